package handler

import (
	"github.com/gin-gonic/gin"

	"model-artifact-registry/internal/usecase"
)

type Handler struct {
	models   *usecase.ModelUseCase
	versions *usecase.VersionUseCase
}

func New(models *usecase.ModelUseCase, versions *usecase.VersionUseCase) *Handler {
	return &Handler{models: models, versions: versions}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Models
	r.GET("/models", h.ListModels)
	r.POST("/models", h.RegisterModel)
	r.GET("/models/:id", h.GetModel)
	r.PATCH("/models/:id", h.UpdateModel)
	r.DELETE("/models/:id", h.DeleteModel)

	// Versions
	r.POST("/models/:id/versions", h.RegisterVersion)
	r.GET("/models/:id/versions/:ver", h.GetVersion)
	r.DELETE("/models/:id/versions/:ver", h.DeleteVersion)
	r.GET("/models/:id/versions/:ver/download", h.DownloadVersion)
}
