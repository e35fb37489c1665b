package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/office-roster-api/internal/domain"
	"github.com/office-roster-api/internal/dto"
	"github.com/office-roster-api/internal/metrics"
	"github.com/office-roster-api/internal/middleware"
)

// responder - общие для хендлеров ответы и перевод ошибок в статусы
type responder struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func (h *responder) extractID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	if raw == "" {
		return 0, errors.New("id is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errors.New("id must be positive")
	}
	return id, nil
}

// handleServiceError - единственное место, где вид ошибки превращается в HTTP статус
func (h *responder) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		rangeErr    *domain.BirthDateRangeError
		capacityErr *domain.CapacityError
	)

	switch {
	case errors.Is(err, domain.ErrValidation):
		h.observeRejection(r, "validation")
		h.respondError(w, http.StatusUnprocessableEntity, "validation error", err.Error())
	case errors.Is(err, domain.ErrInvalidFormat):
		h.observeRejection(r, "invalid_format")
		h.respondError(w, http.StatusUnprocessableEntity, "invalid format", err.Error())
	case errors.As(err, &rangeErr):
		h.observeRejection(r, "birth_date_out_of_range")
		h.respondError(w, http.StatusUnprocessableEntity, "birth date out of range", rangeErr.Error())
	case errors.Is(err, domain.ErrEmployeeNotFound):
		h.respondError(w, http.StatusNotFound, "employee not found", "")
	case errors.Is(err, domain.ErrOfficeNotFound):
		h.observeRejection(r, "office_not_found")
		h.respondError(w, http.StatusNotFound, "office not found", "")
	case errors.As(err, &capacityErr):
		h.observeRejection(r, "capacity_exceeded")
		h.respondError(w, http.StatusConflict, "office is at max occupancy", capacityErr.Error())
	default:
		h.logger.Error("internal error",
			slog.Any("error", err),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.RequestIDFromContext(r.Context())),
		)
		h.respondError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

// observeRejection учитывает только отказы в записи сотрудника
func (h *responder) observeRejection(r *http.Request, reason string) {
	if r.Method == http.MethodPost || r.Method == http.MethodPut {
		h.metrics.ObserveRejection(reason)
	}
}

func (h *responder) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *responder) respondError(w http.ResponseWriter, status int, errMsg, details string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Error: errMsg}
	if details != "" {
		resp.Message = details
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode error response", slog.Any("error", err))
	}
}
