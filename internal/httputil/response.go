// Package httputil provides the JSON response helpers shared by the dev proxy handlers.
package httputil

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/rotator-admin/internal/errors"
)

// ErrRouteNotFound is reported for paths matched by neither a proxy rule nor the static UI.
var ErrRouteNotFound = apperrors.Wrap(apperrors.ErrNotFound, "route not found")

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// MakeJSONResponse writes body as JSON with statusCode.
func MakeJSONResponse(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// ErrorStatus maps a domain error to its HTTP status and response body.
func ErrorStatus(err error) (int, ErrorResponse) {
	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "Route not found",
		}
	case apperrors.Is(err, apperrors.ErrUnavailable):
		return http.StatusBadGateway, ErrorResponse{
			Error:   "upstream_unavailable",
			Message: "The backend did not respond",
		}
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusBadRequest, ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		}
	default:
		// For unknown/internal errors, don't expose details to the client
		return http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		}
	}
}

// HandleError logs err and writes the mapped JSON response to a plain ResponseWriter.
func HandleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	statusCode, body := ErrorStatus(err)
	logError(logger, statusCode, body, err)
	MakeJSONResponse(w, statusCode, body)
}

// HandleErrorGin is HandleError for a gin context.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	statusCode, body := ErrorStatus(err)
	logError(logger, statusCode, body, err)
	c.JSON(statusCode, body)
}

func logError(logger *slog.Logger, statusCode int, body ErrorResponse, err error) {
	if logger == nil {
		return
	}

	level := slog.LevelError
	if statusCode < http.StatusInternalServerError {
		level = slog.LevelWarn
	}
	logger.Log(context.Background(), level, "request failed",
		slog.Int("status_code", statusCode),
		slog.String("error_code", body.Error),
		slog.Any("error", err),
	)
}
