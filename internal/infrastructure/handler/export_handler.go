package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/damon-houk/fxrate-lookup/internal/application/export"
	"github.com/damon-houk/fxrate-lookup/internal/application/service"
	"github.com/damon-houk/fxrate-lookup/internal/domain/repository"
	"github.com/damon-houk/fxrate-lookup/internal/infrastructure/logger"
	"github.com/damon-houk/fxrate-lookup/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// ExportHandler serves parked CSV exports
type ExportHandler struct {
	service *service.ExportService
	logger  logger.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(service *service.ExportService, log logger.Logger) *ExportHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ExportHandler{
		service: service,
		logger:  log,
	}
}

// Download sends the CSV for a token as an attachment
func (h *ExportHandler) Download(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	token := mux.Vars(r)["token"]

	exp, body, err := h.service.Download(r.Context(), token)
	if err != nil {
		if errors.Is(err, repository.ErrExportNotFound) {
			h.logger.Warn("Export not found", map[string]interface{}{
				"request_id": requestID,
				"token":      token,
			})
			sendErrorResponse(w, h.logger, "Export not found",
				"The export does not exist, has expired or was already downloaded", http.StatusNotFound, requestID)
			return
		}

		h.logger.Error("Failed to retrieve export", map[string]interface{}{
			"request_id": requestID,
			"token":      token,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Failed to retrieve export",
			"An unexpected error occurred while retrieving the export", http.StatusInternalServerError, requestID)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exp.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.logger.Warn("Failed to write export", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
	}
}

// RegisterRoutes registers the export handler routes
func (h *ExportHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/export/{token}", h.Download).Methods(http.MethodGet)
}

// sendErrorResponse sends a standardized error response
func sendErrorResponse(w http.ResponseWriter, log logger.Logger, message, description string, statusCode int, requestID string) {
	resp := ErrorResponse{
		Error:       message,
		Status:      statusCode,
		Description: description,
		RequestID:   requestID,
	}

	log.Debug("Sending error response", map[string]interface{}{
		"request_id":  requestID,
		"status_code": statusCode,
		"message":     message,
	})

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, log, statusCode, resp, requestID)
}

func writeJSON(w http.ResponseWriter, log logger.Logger, statusCode int, v interface{}, requestID string) {
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("Failed to encode response", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
	}
}
