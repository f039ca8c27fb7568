package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/benvon/trackme/internal/models"
	"github.com/benvon/trackme/internal/reports"
	"github.com/benvon/trackme/internal/store"
	"github.com/benvon/trackme/internal/validation"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// GoalHandler handles goal requests
type GoalHandler struct {
	store  *store.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewGoalHandler creates a new goal handler
func NewGoalHandler(s *store.Store, logger *zap.Logger) *GoalHandler {
	return &GoalHandler{store: s, logger: logger, now: time.Now}
}

// RegisterRoutes registers goal routes on a router already prefixed with /goals
func (h *GoalHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListGoals).Methods(http.MethodGet)
	r.HandleFunc("", h.CreateGoal).Methods(http.MethodPost)
	r.HandleFunc("/{id}", h.GetGoal).Methods(http.MethodGet)
	r.HandleFunc("/{id}", h.UpdateGoal).Methods(http.MethodPatch)
	r.HandleFunc("/{id}", h.DeleteGoal).Methods(http.MethodDelete)
}

// CreateGoalRequest is the body of a goal creation. Target may be a JSON
// number or a numeric string.
type CreateGoalRequest struct {
	Title       string         `json:"title" validate:"required,max=500"`
	Description string         `json:"description" validate:"max=10000"`
	Target      *numberInput   `json:"target" validate:"required"`
	Unit        string         `json:"unit" validate:"max=64"`
	Cadence     models.Cadence `json:"cadence" validate:"omitempty,cadence"`
	StartDate   string         `json:"startDate" validate:"omitempty,calendar_date"`
	EndDate     string         `json:"endDate" validate:"omitempty,calendar_date"`
}

// UpdateGoalRequest is a partial goal update. Target and Current may be JSON
// numbers or numeric strings.
type UpdateGoalRequest struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	Target      *numberInput    `json:"target,omitempty"`
	Current     *numberInput    `json:"current,omitempty"`
	Unit        *string         `json:"unit,omitempty"`
	Cadence     *models.Cadence `json:"cadence,omitempty"`
	StartDate   *string         `json:"startDate,omitempty"`
	EndDate     *string         `json:"endDate,omitempty"`
}

func (req UpdateGoalRequest) patch() models.GoalPatch {
	return models.GoalPatch{
		Title:       req.Title,
		Description: req.Description,
		Target:      req.Target.float(),
		Current:     req.Current.float(),
		Unit:        req.Unit,
		Cadence:     req.Cadence,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
}

// ListGoals lists goals with their progress and ETA
func (h *GoalHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, reports.Goals(h.store.Goals(), h.now()))
}

// GetGoal returns one goal with its progress and ETA
func (h *GoalHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	goal, err := h.store.Goal(id)
	if err != nil {
		respondStoreError(w, h.logger, err, "goal", id)
		return
	}
	respondJSON(w, http.StatusOK, reports.Goals([]models.Goal{goal}, h.now())[0])
}

// CreateGoal adds a goal starting at zero progress
func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var body CreateGoalRequest
	if err := decodeAndValidate(r, &body); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	req := models.NewGoal{
		Title:       validation.SanitizeText(body.Title),
		Description: validation.SanitizeText(body.Description),
		Target:      float64(*body.Target),
		Unit:        body.Unit,
		Cadence:     body.Cadence,
		StartDate:   body.StartDate,
		EndDate:     body.EndDate,
	}
	if req.Title == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "title is required")
		return
	}
	if err := validation.Struct(req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	var goal models.Goal
	err := traced(r.Context(), store.CollectionGoals, "create", func(ctx context.Context) error {
		var err error
		goal, err = h.store.AddGoal(ctx, req)
		return err
	})
	if err != nil {
		respondStoreError(w, h.logger, err, "goal", "")
		return
	}
	respondJSON(w, http.StatusCreated, goal)
}

// UpdateGoal applies a partial update, including progress via current
func (h *GoalHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	var body UpdateGoalRequest
	if err := decodeAndValidate(r, &body); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	patch := body.patch()
	if err := sanitizePatchText("title", patch.Title, patch.Description); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	if err := validation.Struct(patch); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	var goal models.Goal
	err := traced(r.Context(), store.CollectionGoals, "update", func(ctx context.Context) error {
		var err error
		goal, err = h.store.UpdateGoal(ctx, id, patch)
		return err
	})
	if err != nil {
		respondStoreError(w, h.logger, err, "goal", id)
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

// DeleteGoal removes a goal
func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	err := traced(r.Context(), store.CollectionGoals, "delete", func(ctx context.Context) error {
		return h.store.DeleteGoal(ctx, id)
	})
	if err != nil {
		respondStoreError(w, h.logger, err, "goal", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
