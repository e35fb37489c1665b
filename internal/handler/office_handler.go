package handler

import (
	"log/slog"
	"net/http"

	"github.com/office-roster-api/internal/dto"
	"github.com/office-roster-api/internal/metrics"
	"github.com/office-roster-api/internal/service"
)

type OfficeHandler struct {
	responder
	officeService service.OfficeService
}

func NewOfficeHandler(officeService service.OfficeService, m *metrics.Metrics, logger *slog.Logger) *OfficeHandler {
	return &OfficeHandler{
		responder:     responder{logger: logger, metrics: m},
		officeService: officeService,
	}
}

func (h *OfficeHandler) List(w http.ResponseWriter, r *http.Request) {
	offices, err := h.officeService.List(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	resp := make([]dto.OfficeResponse, len(offices))
	for i := range offices {
		resp[i] = dto.ToOfficeResponse(&offices[i])
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *OfficeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := h.extractID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid office id", err.Error())
		return
	}

	office, err := h.officeService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.ToOfficeResponse(office))
}
