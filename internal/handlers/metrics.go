package handlers

import (
	"context"
	"net/http"

	"github.com/benvon/trackme/internal/models"
	"github.com/benvon/trackme/internal/reports"
	"github.com/benvon/trackme/internal/store"
	"github.com/benvon/trackme/internal/validation"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// MetricHandler handles metric and metric log requests
type MetricHandler struct {
	store  *store.Store
	logger *zap.Logger
}

// NewMetricHandler creates a new metric handler
func NewMetricHandler(s *store.Store, logger *zap.Logger) *MetricHandler {
	return &MetricHandler{store: s, logger: logger}
}

// RegisterRoutes registers metric routes on a router already prefixed with /metrics
func (h *MetricHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListMetrics).Methods(http.MethodGet)
	r.HandleFunc("", h.CreateMetric).Methods(http.MethodPost)
	r.HandleFunc("/{id}", h.GetMetric).Methods(http.MethodGet)
	r.HandleFunc("/{id}", h.UpdateMetric).Methods(http.MethodPatch)
	r.HandleFunc("/{id}", h.DeleteMetric).Methods(http.MethodDelete)
	r.HandleFunc("/{id}/logs", h.ListLogs).Methods(http.MethodGet)
	r.HandleFunc("/{id}/logs", h.CreateLog).Methods(http.MethodPost)
	r.HandleFunc("/{id}/stats", h.Stats).Methods(http.MethodGet)
}

// RegisterLogRoutes registers routes on a router already prefixed with /metric-logs
func (h *MetricHandler) RegisterLogRoutes(r *mux.Router) {
	r.HandleFunc("/{id}", h.DeleteLog).Methods(http.MethodDelete)
}

// CreateMetricLogRequest records one observation for the metric in the path.
// Value may be a JSON number or a numeric string.
type CreateMetricLogRequest struct {
	Value *numberInput `json:"value" validate:"required"`
	Date  string       `json:"date" validate:"omitempty,calendar_date"`
	Notes string       `json:"notes" validate:"max=2000"`
}

// ListMetrics lists metric definitions
func (h *MetricHandler) ListMetrics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Metrics())
}

// GetMetric returns one metric
func (h *MetricHandler) GetMetric(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	metric, err := h.store.Metric(id)
	if err != nil {
		respondStoreError(w, h.logger, err, "metric", id)
		return
	}
	respondJSON(w, http.StatusOK, metric)
}

// CreateMetric adds a metric definition
func (h *MetricHandler) CreateMetric(w http.ResponseWriter, r *http.Request) {
	var req models.NewMetric
	if err := decodeAndValidate(r, &req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	req.Name = validation.SanitizeText(req.Name)
	req.Description = validation.SanitizeText(req.Description)
	if req.Name == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "name is required")
		return
	}

	var metric models.Metric
	err := traced(r.Context(), store.CollectionMetrics, "create", func(ctx context.Context) error {
		var err error
		metric, err = h.store.AddMetric(ctx, req)
		return err
	})
	if err != nil {
		respondStoreError(w, h.logger, err, "metric", "")
		return
	}
	respondJSON(w, http.StatusCreated, metric)
}

// UpdateMetric applies a partial update
func (h *MetricHandler) UpdateMetric(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	var patch models.MetricPatch
	if err := decodeAndValidate(r, &patch); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	if err := sanitizePatchText("name", patch.Name, patch.Description); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	var metric models.Metric
	err := traced(r.Context(), store.CollectionMetrics, "update", func(ctx context.Context) error {
		var err error
		metric, err = h.store.UpdateMetric(ctx, id, patch)
		return err
	})
	if err != nil {
		respondStoreError(w, h.logger, err, "metric", id)
		return
	}
	respondJSON(w, http.StatusOK, metric)
}

// DeleteMetric removes a metric and every log recorded against it
func (h *MetricHandler) DeleteMetric(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	err := traced(r.Context(), store.CollectionMetrics, "delete", func(ctx context.Context) error {
		return h.store.DeleteMetric(ctx, id)
	})
	if err != nil {
		respondStoreError(w, h.logger, err, "metric", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListLogs lists the logs of one metric in insertion order
func (h *MetricHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if _, err := h.store.Metric(id); err != nil {
		respondStoreError(w, h.logger, err, "metric", id)
		return
	}
	respondJSON(w, http.StatusOK, h.store.LogsForMetric(id))
}

// CreateLog records an observation for an existing metric
func (h *MetricHandler) CreateLog(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	var req CreateMetricLogRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	if _, err := h.store.Metric(id); err != nil {
		respondStoreError(w, h.logger, err, "metric", id)
		return
	}

	in := models.NewMetricLog{
		MetricID: id,
		Value:    float64(*req.Value),
		Date:     req.Date,
		Notes:    validation.SanitizeText(req.Notes),
	}

	var entry models.MetricLog
	err := traced(r.Context(), store.CollectionMetricLogs, "create", func(ctx context.Context) error {
		var err error
		entry, err = h.store.AddMetricLog(ctx, in)
		return err
	})
	if err != nil {
		respondStoreError(w, h.logger, err, "metric log", "")
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}

// Stats returns the metric with its summary statistics, chart series and
// most recent logs
func (h *MetricHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	metric, err := h.store.Metric(id)
	if err != nil {
		respondStoreError(w, h.logger, err, "metric", id)
		return
	}
	respondJSON(w, http.StatusOK, reports.Metrics([]models.Metric{metric}, h.store.LogsForMetric(id))[0])
}

// DeleteLog removes one metric log
func (h *MetricHandler) DeleteLog(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	err := traced(r.Context(), store.CollectionMetricLogs, "delete", func(ctx context.Context) error {
		return h.store.DeleteMetricLog(ctx, id)
	})
	if err != nil {
		respondStoreError(w, h.logger, err, "metric log", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
