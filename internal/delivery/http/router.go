package http

import (
	"net/http"

	"salon-booking/internal/delivery/http/handler"
	"salon-booking/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	bookingHandler      *handler.BookingHandler
	treatmentHandler    *handler.TreatmentHandler
	auditLogHandler     *handler.AuditLogHandler
	corsMiddleware      *middleware.CORSMiddleware
	loggingMiddleware   *middleware.LoggingMiddleware
	rateLimitMiddleware *middleware.RateLimitMiddleware
}

// NewRouter wires handlers and middleware. rateLimitMiddleware may be nil
// to serve without throttling.
func NewRouter(
	bookingHandler *handler.BookingHandler,
	treatmentHandler *handler.TreatmentHandler,
	auditLogHandler *handler.AuditLogHandler,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		bookingHandler:      bookingHandler,
		treatmentHandler:    treatmentHandler,
		auditLogHandler:     auditLogHandler,
		corsMiddleware:      corsMiddleware,
		loggingMiddleware:   loggingMiddleware,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Treatment catalog
	api.HandleFunc("/treatments", r.treatmentHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/treatments", r.treatmentHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/treatments/{id}", r.treatmentHandler.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/treatments/{id}", r.treatmentHandler.Update).Methods(http.MethodPut)

	// Appointments
	appointments := api.PathPrefix("/appointments").Subrouter()
	if r.rateLimitMiddleware != nil {
		appointments.Use(r.rateLimitMiddleware.Handle)
	}
	appointments.HandleFunc("", r.bookingHandler.CreateAppointment).Methods(http.MethodPost)
	appointments.HandleFunc("", r.bookingHandler.LookupAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}/cancel", r.bookingHandler.CancelAppointment).Methods(http.MethodPost)
	appointments.HandleFunc("/{id}/reschedule", r.bookingHandler.RescheduleAppointment).Methods(http.MethodPost)
	appointments.HandleFunc("/{id}/notifications", r.bookingHandler.GetNotifications).Methods(http.MethodGet)

	// Audit trail
	api.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	api.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
