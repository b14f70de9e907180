package handlers

import (
	"errors"
	"net/http"

	"connectly/services"

	"github.com/gin-gonic/gin"
)

// writeServiceError транслирует доменные ошибки в HTTP статусы.
// Ошибка хранилища отдается как generic 500, отличимый от пустого результата.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
