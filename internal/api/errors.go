package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-feeds/backend/internal/logging"
	"github.com/pageza/recipe-feeds/backend/internal/service"
	"github.com/pageza/recipe-feeds/backend/internal/types"
)

// respondError maps service errors to HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	}

	if status == http.StatusInternalServerError {
		logging.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(status, types.ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(status, types.ErrorResponse{Error: err.Error()})
}

// badRequest reports a payload that failed binding.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
}
