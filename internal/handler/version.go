package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"model-artifact-registry/internal/dto"
	"model-artifact-registry/internal/usecase"
)

// RegisterVersion handles a multipart upload: the artifact under `model_file`
// and version metadata as a JSON string under `metadata`.
func (h *Handler) RegisterVersion(c *gin.Context) {
	modelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model id"})
		return
	}

	file, header, err := c.Request.FormFile("model_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "model_file is required"})
		return
	}
	defer file.Close()

	var meta dto.RegisterVersionMetadata
	if err := json.Unmarshal([]byte(c.PostForm("metadata")), &meta); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "metadata is not valid JSON: " + err.Error()})
		return
	}
	if err := meta.Validate(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	version, err := h.versions.Register(c.Request.Context(), modelID, usecase.RegisterVersionInput{
		Description: meta.Description,
		CreatedBy:   meta.CreatedBy,
		Tags:        meta.Tags,
		Metrics:     meta.Metrics,
		Parameters:  meta.Parameters,
		Alias:       meta.Alias,
		FileName:    header.Filename,
		File:        file,
	})
	if err != nil {
		log.WithError(err).Error("register version failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterVersionResponse{
		Message:       fmt.Sprintf("model %s version %d uploaded successfully", modelID, version.VersionNumber),
		ModelID:       modelID,
		VersionNumber: version.VersionNumber,
		VersionID:     version.ID,
	})
}

func (h *Handler) GetVersion(c *gin.Context) {
	modelID, versionNumber, ok := versionKey(c)
	if !ok {
		return
	}

	version, err := h.versions.Get(c.Request.Context(), modelID, versionNumber)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToVersionResponse(version))
}

func (h *Handler) DeleteVersion(c *gin.Context) {
	modelID, versionNumber, ok := versionKey(c)
	if !ok {
		return
	}

	if err := h.versions.Delete(c.Request.Context(), modelID, versionNumber); err != nil {
		log.WithError(err).Error("delete version failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("model %s version %d deleted successfully", modelID, versionNumber),
	})
}

func (h *Handler) DownloadVersion(c *gin.Context) {
	modelID, versionNumber, ok := versionKey(c)
	if !ok {
		return
	}

	result, err := h.versions.Download(c.Request.Context(), modelID, versionNumber)
	if err != nil {
		log.WithError(err).Error("download version failed")
		mapDomainError(c, err)
		return
	}

	c.Header("Model-Name", result.ModelName)
	c.FileAttachment(result.Path, result.FileName)
}

func versionKey(c *gin.Context) (uuid.UUID, int, bool) {
	modelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid model id"})
		return uuid.Nil, 0, false
	}
	versionNumber, err := strconv.Atoi(c.Param("ver"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid version number"})
		return uuid.Nil, 0, false
	}
	return modelID, versionNumber, true
}
