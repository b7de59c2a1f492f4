package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CamiloTriana75/ProyectoElden/internal/db"
	"github.com/CamiloTriana75/ProyectoElden/internal/logger"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// RespondError writes the response for errors a handler did not map itself.
func RespondError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, db.ErrStoreUnavailable) {
		logger.Error("store unavailable", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Storage temporarily unavailable"})
		return
	}

	logger.Error(fallback, "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
}
