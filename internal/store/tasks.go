package store

import (
	"context"
	"fmt"

	"github.com/benvon/trackme/internal/models"
)

// Tasks returns a copy of the task collection in stored order
func (s *Store) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTasks(s.tasks)
}

// Task returns the task with the given id
func (s *Store) Task(id string) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOf(s.tasks, id, taskID)
	if i < 0 {
		return models.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return s.tasks[i].Clone(), nil
}

// AddTask appends a new task with a fresh id and today's creation date
func (s *Store) AddTask(ctx context.Context, in models.NewTask) (models.Task, error) {
	var task models.Task

	err := s.mutate(ctx, func() ([]Change, error) {
		task = models.Task{
			ID: s.uniqueID(func(id string) bool {
				return indexOf(s.tasks, id, taskID) >= 0
			}),
			Title:       in.Title,
			Description: in.Description,
			Status:      in.Status,
			Priority:    in.Priority,
			DueDate:     in.DueDate,
			Tags:        models.NormalizeTags(in.Tags),
			CreatedAt:   s.today(),
		}
		if task.Status == "" {
			task.Status = models.TaskStatusPending
		}
		if task.Priority == "" {
			task.Priority = models.TaskPriorityMedium
		}

		next := append(cloneTasks(s.tasks), task)
		if err := save(ctx, s, CollectionTasks, next); err != nil {
			return nil, err
		}
		s.tasks = next
		return []Change{{Collection: CollectionTasks, Operation: OperationCreate, RecordID: task.ID}}, nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return task.Clone(), nil
}

// UpdateTask merges patch into the task with the given id
func (s *Store) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error) {
	return s.updateTask(ctx, id, patch.Apply)
}

// UpdateTaskStatus changes only the status of the task with the given id
func (s *Store) UpdateTaskStatus(ctx context.Context, id string, status models.TaskStatus) (models.Task, error) {
	known := false
	for _, st := range models.TaskStatuses {
		if st == status {
			known = true
		}
	}
	if !known {
		return models.Task{}, fmt.Errorf("task status %q: %w", status, ErrInvalid)
	}
	return s.updateTask(ctx, id, func(t *models.Task) {
		t.Status = status
	})
}

func (s *Store) updateTask(ctx context.Context, id string, apply func(*models.Task)) (models.Task, error) {
	var task models.Task

	err := s.mutate(ctx, func() ([]Change, error) {
		i := indexOf(s.tasks, id, taskID)
		if i < 0 {
			return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
		}

		next := cloneTasks(s.tasks)
		apply(&next[i])
		next[i].ID = id
		if next[i].Tags == nil {
			next[i].Tags = []string{}
		}

		if err := save(ctx, s, CollectionTasks, next); err != nil {
			return nil, err
		}
		s.tasks = next
		task = next[i]
		return []Change{{Collection: CollectionTasks, Operation: OperationUpdate, RecordID: id}}, nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return task.Clone(), nil
}

// DeleteTask removes the task with the given id
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	return s.mutate(ctx, func() ([]Change, error) {
		if indexOf(s.tasks, id, taskID) < 0 {
			return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
		}

		next := without(s.tasks, func(t models.Task) bool { return t.ID != id })
		if err := save(ctx, s, CollectionTasks, next); err != nil {
			return nil, err
		}
		s.tasks = next
		return []Change{{Collection: CollectionTasks, Operation: OperationDelete, RecordID: id}}, nil
	})
}
