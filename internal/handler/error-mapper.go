package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"model-artifact-registry/internal/domain"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrModelNotFound),
		errors.Is(err, domain.ErrVersionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Metadata exists but the store holds no bytes: not the same failure
	// as a missing row.
	case errors.Is(err, domain.ErrArtifactMissing):
		c.JSON(http.StatusGone, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrModelNameConflict),
		errors.Is(err, domain.ErrAliasConflict),
		errors.Is(err, domain.ErrVersionNumberConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrInvalidModelName),
		errors.Is(err, domain.ErrInvalidMetadata):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrStorageFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
