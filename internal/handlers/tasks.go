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

// TaskHandler handles task requests
type TaskHandler struct {
	store  *store.Store
	logger *zap.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(s *store.Store, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{store: s, logger: logger}
}

// RegisterRoutes registers task routes on a router already prefixed with /tasks
func (h *TaskHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListTasks).Methods(http.MethodGet)
	r.HandleFunc("", h.CreateTask).Methods(http.MethodPost)
	r.HandleFunc("/{id}", h.GetTask).Methods(http.MethodGet)
	r.HandleFunc("/{id}", h.UpdateTask).Methods(http.MethodPatch)
	r.HandleFunc("/{id}", h.DeleteTask).Methods(http.MethodDelete)
	r.HandleFunc("/{id}/status", h.UpdateTaskStatus).Methods(http.MethodPut)
}

// UpdateTaskStatusRequest moves a task between board columns
type UpdateTaskStatusRequest struct {
	Status models.TaskStatus `json:"status" validate:"required,task_status"`
}

// ListTasks lists tasks, optionally filtered by q, status and priority.
// "all" matches any status or priority.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := reports.TaskFilter{
		Search:   query.Get("q"),
		Status:   query.Get("status"),
		Priority: query.Get("priority"),
	}

	if s := filter.Status; s != "" && s != reports.FilterAll {
		if err := validation.ValidateTaskStatus(s); err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
	}
	if p := filter.Priority; p != "" && p != reports.FilterAll {
		if err := validation.ValidateTaskPriority(p); err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
	}

	respondJSON(w, http.StatusOK, reports.FilterTasks(h.store.Tasks(), filter))
}

// GetTask returns one task
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	task, err := h.store.Task(id)
	if err != nil {
		respondStoreError(w, h.logger, err, "task", id)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// CreateTask adds a task
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req models.NewTask
	if err := decodeAndValidate(r, &req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	req.Title = validation.SanitizeText(req.Title)
	req.Description = validation.SanitizeText(req.Description)
	if req.Title == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "title is required")
		return
	}

	var task models.Task
	err := traced(r.Context(), store.CollectionTasks, "create", func(ctx context.Context) error {
		var err error
		task, err = h.store.AddTask(ctx, req)
		return err
	})
	if err != nil {
		respondStoreError(w, h.logger, err, "task", "")
		return
	}
	respondJSON(w, http.StatusCreated, task)
}

// UpdateTask applies a partial update
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	var patch models.TaskPatch
	if err := decodeAndValidate(r, &patch); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	if err := sanitizePatchText("title", patch.Title, patch.Description); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	var task models.Task
	err := traced(r.Context(), store.CollectionTasks, "update", func(ctx context.Context) error {
		var err error
		task, err = h.store.UpdateTask(ctx, id, patch)
		return err
	})
	if err != nil {
		respondStoreError(w, h.logger, err, "task", id)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// UpdateTaskStatus sets a task's status
func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	var req UpdateTaskStatusRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	var task models.Task
	err := traced(r.Context(), store.CollectionTasks, "update_status", func(ctx context.Context) error {
		var err error
		task, err = h.store.UpdateTaskStatus(ctx, id, req.Status)
		return err
	})
	if err != nil {
		respondStoreError(w, h.logger, err, "task", id)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// DeleteTask removes a task
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	err := traced(r.Context(), store.CollectionTasks, "delete", func(ctx context.Context) error {
		return h.store.DeleteTask(ctx, id)
	})
	if err != nil {
		respondStoreError(w, h.logger, err, "task", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
