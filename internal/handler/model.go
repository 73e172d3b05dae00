package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"model-artifact-registry/internal/dto"
	"model-artifact-registry/internal/usecase"
)

func (h *Handler) ListModels(c *gin.Context) {
	models, err := h.models.List(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("list models failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.ModelResponse, 0, len(models))
	for _, m := range models {
		items = append(items, dto.ToModelResponse(m))
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetModel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model id"})
		return
	}

	model, err := h.models.Get(c.Request.Context(), id)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToModelResponse(model))
}

// RegisterModel handles a multipart upload: the artifact under `model_file`
// and the model metadata as a JSON string under `metadata`.
func (h *Handler) RegisterModel(c *gin.Context) {
	file, header, err := c.Request.FormFile("model_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "model_file is required"})
		return
	}
	defer file.Close()

	var meta dto.RegisterModelMetadata
	if err := json.Unmarshal([]byte(c.PostForm("metadata")), &meta); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "metadata is not valid JSON: " + err.Error()})
		return
	}
	if err := meta.Validate(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	model, err := h.models.Register(c.Request.Context(), usecase.RegisterModelInput{
		Name:               meta.Name,
		Description:        meta.Description,
		CreatedBy:          meta.CreatedBy,
		Tags:               meta.Tags,
		VersionDescription: meta.VersionDescription,
		VersionMetrics:     meta.VersionMetrics,
		VersionParameters:  meta.VersionParameters,
		VersionTags:        meta.VersionTags,
		VersionAlias:       meta.VersionAlias,
		FileName:           header.Filename,
		File:               file,
	})
	if err != nil {
		log.WithError(err).Error("register model failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterModelResponse{
		Message: "model " + model.Name + " uploaded successfully",
		ModelID: model.ID,
		Name:    model.Name,
	})
}

func (h *Handler) UpdateModel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model id"})
		return
	}

	var req dto.UpdateModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model, err := h.models.Update(c.Request.Context(), id, usecase.UpdateModelInput{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   req.CreatedBy,
		Tags:        req.Tags,
	})
	if err != nil {
		log.WithError(err).Error("update model failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToModelResponse(model))
}

func (h *Handler) DeleteModel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model id"})
		return
	}

	if err := h.models.Delete(c.Request.Context(), id); err != nil {
		log.WithError(err).Error("delete model failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "model " + id.String() + " deleted successfully"})
}
