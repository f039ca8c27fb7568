package handlers

import (
	"net/http"
	"time"

	"github.com/benvon/trackme/internal/models"
	"github.com/benvon/trackme/internal/reports"
	"github.com/benvon/trackme/internal/store"
	"github.com/gorilla/mux"
)

// ReportHandler serves the read-only views derived from the store
type ReportHandler struct {
	store *store.Store
	now   func() time.Time
}

// NewReportHandler creates a new report handler
func NewReportHandler(s *store.Store) *ReportHandler {
	return &ReportHandler{store: s, now: time.Now}
}

// RegisterRoutes registers report, board and calendar routes on the API router
func (h *ReportHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/reports/dashboard", h.Dashboard).Methods(http.MethodGet)
	r.HandleFunc("/reports/goals", h.Goals).Methods(http.MethodGet)
	r.HandleFunc("/reports/metrics", h.Metrics).Methods(http.MethodGet)
	r.HandleFunc("/board", h.Board).Methods(http.MethodGet)
	r.HandleFunc("/calendar", h.Calendar).Methods(http.MethodGet)
}

// Dashboard returns the overview summary
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, reports.Dashboard(h.store.Tasks(), h.store.Goals(), h.store.Metrics(), h.store.MetricLogs()))
}

// Goals returns progress and ETA for every goal
func (h *ReportHandler) Goals(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, reports.Goals(h.store.Goals(), h.now()))
}

// Metrics returns stats, series and recent logs for every metric
func (h *ReportHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, reports.Metrics(h.store.Metrics(), h.store.MetricLogs()))
}

// Board returns tasks grouped into kanban columns
func (h *ReportHandler) Board(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, reports.Board(h.store.Tasks()))
}

// Calendar returns upcoming events grouped by date, optionally for one month
func (h *ReportHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if err := reports.ValidMonth(month); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	today := models.FormatDate(h.now())
	respondJSON(w, http.StatusOK, reports.Calendar(h.store.Tasks(), h.store.Goals(), month, today))
}
