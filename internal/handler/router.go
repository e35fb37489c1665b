package handler

import (
	"log/slog"
	"net/http"

	"github.com/office-roster-api/internal/metrics"
	"github.com/office-roster-api/internal/middleware"
)

// Router настраивает маршруты API
type Router struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	metrics       *metrics.Metrics
	empHandler    *EmployeeHandler
	officeHandler *OfficeHandler
}

// NewRouter создаёт новый роутер
func NewRouter(empHandler *EmployeeHandler, officeHandler *OfficeHandler, m *metrics.Metrics, logger *slog.Logger) *Router {
	return &Router{
		mux:           http.NewServeMux(),
		logger:        logger,
		metrics:       m,
		empHandler:    empHandler,
		officeHandler: officeHandler,
	}
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	r.handle("GET /employees", r.empHandler.List)
	r.handle("POST /employees", r.empHandler.Create)
	r.handle("GET /employees/{id}", r.empHandler.GetByID)
	r.handle("PUT /employees/{id}", r.empHandler.Update)
	r.handle("DELETE /employees/{id}", r.empHandler.Delete)

	r.handle("GET /offices", r.officeHandler.List)
	r.handle("GET /offices/{id}", r.officeHandler.GetByID)

	// Health check
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	if r.metrics != nil {
		r.mux.Handle("GET /metrics", r.metrics.Handler())
	}

	// Применяем middleware
	handler := middleware.ContentType(r.mux)
	handler = middleware.Logger(r.logger)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recoverer(r.logger)(handler)

	return handler
}

func (r *Router) handle(pattern string, fn http.HandlerFunc) {
	r.mux.Handle(pattern, middleware.Instrument(r.metrics, pattern, fn))
}
