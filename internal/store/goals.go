package store

import (
	"context"
	"fmt"

	"github.com/benvon/trackme/internal/models"
)

// Goals returns a copy of the goal collection in stored order
func (s *Store) Goals() []models.Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Goal{}, s.goals...)
}

// Goal returns the goal with the given id
func (s *Store) Goal(id string) (models.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOf(s.goals, id, goalID)
	if i < 0 {
		return models.Goal{}, fmt.Errorf("goal %s: %w", id, ErrNotFound)
	}
	return s.goals[i], nil
}

// AddGoal appends a new goal. Current always starts at zero.
func (s *Store) AddGoal(ctx context.Context, in models.NewGoal) (models.Goal, error) {
	if err := checkFinite("target", &in.Target); err != nil {
		return models.Goal{}, err
	}
	var goal models.Goal

	err := s.mutate(ctx, func() ([]Change, error) {
		goal = models.Goal{
			ID: s.uniqueID(func(id string) bool {
				return indexOf(s.goals, id, goalID) >= 0
			}),
			Title:       in.Title,
			Description: in.Description,
			Target:      in.Target,
			Current:     0,
			Unit:        in.Unit,
			Cadence:     in.Cadence,
			StartDate:   in.StartDate,
			EndDate:     in.EndDate,
			CreatedAt:   s.today(),
		}
		if goal.Cadence == "" {
			goal.Cadence = models.CadenceMonthly
		}
		if goal.StartDate == "" {
			goal.StartDate = goal.CreatedAt
		}
		s.stampCompletion(&goal)

		next := append(append([]models.Goal{}, s.goals...), goal)
		if err := save(ctx, s, CollectionGoals, next); err != nil {
			return nil, err
		}
		s.goals = next
		return []Change{{Collection: CollectionGoals, Operation: OperationCreate, RecordID: goal.ID}}, nil
	})
	if err != nil {
		return models.Goal{}, err
	}
	return goal, nil
}

// UpdateGoal merges patch into the goal with the given id. Progress is
// recorded by patching Current.
func (s *Store) UpdateGoal(ctx context.Context, id string, patch models.GoalPatch) (models.Goal, error) {
	if err := checkFinite("target and current", patch.Target, patch.Current); err != nil {
		return models.Goal{}, err
	}
	var goal models.Goal

	err := s.mutate(ctx, func() ([]Change, error) {
		i := indexOf(s.goals, id, goalID)
		if i < 0 {
			return nil, fmt.Errorf("goal %s: %w", id, ErrNotFound)
		}

		next := append([]models.Goal{}, s.goals...)
		patch.Apply(&next[i])
		s.stampCompletion(&next[i])

		if err := save(ctx, s, CollectionGoals, next); err != nil {
			return nil, err
		}
		s.goals = next
		goal = next[i]
		return []Change{{Collection: CollectionGoals, Operation: OperationUpdate, RecordID: id}}, nil
	})
	if err != nil {
		return models.Goal{}, err
	}
	return goal, nil
}

// DeleteGoal removes the goal with the given id
func (s *Store) DeleteGoal(ctx context.Context, id string) error {
	return s.mutate(ctx, func() ([]Change, error) {
		if indexOf(s.goals, id, goalID) < 0 {
			return nil, fmt.Errorf("goal %s: %w", id, ErrNotFound)
		}

		next := without(s.goals, func(g models.Goal) bool { return g.ID != id })
		if err := save(ctx, s, CollectionGoals, next); err != nil {
			return nil, err
		}
		s.goals = next
		return []Change{{Collection: CollectionGoals, Operation: OperationDelete, RecordID: id}}, nil
	})
}

// stampCompletion sets CompletedAt the first time a goal reaches its target
// and clears it when progress falls back below.
func (s *Store) stampCompletion(g *models.Goal) {
	if g.Target > 0 && g.IsComplete() {
		if g.CompletedAt == "" {
			g.CompletedAt = s.today()
		}
		return
	}
	g.CompletedAt = ""
}
