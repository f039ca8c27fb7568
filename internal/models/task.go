package models

// TaskStatus represents the kanban column a task sits in
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// TaskStatuses lists every status in board order
var TaskStatuses = []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted}

// TaskPriority represents how urgent a task is
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// TaskPriorities lists every priority from lowest to highest
var TaskPriorities = []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent}

// Task represents a to-do item
type Task struct {
	ID          string       `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description" yaml:"description"`
	Status      TaskStatus   `json:"status" yaml:"status"`
	Priority    TaskPriority `json:"priority" yaml:"priority"`
	DueDate     string       `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	Tags        []string     `json:"tags" yaml:"tags"`
	CreatedAt   string       `json:"createdAt" yaml:"createdAt"`
}

// Clone returns a copy that shares no memory with t
func (t Task) Clone() Task {
	t.Tags = append([]string{}, t.Tags...)
	return t
}

// NewTask holds the caller-supplied fields of a task being created.
// Empty Status and Priority default to pending and medium.
type NewTask struct {
	Title       string       `json:"title" validate:"required,max=500"`
	Description string       `json:"description" validate:"max=10000"`
	Status      TaskStatus   `json:"status" validate:"omitempty,task_status"`
	Priority    TaskPriority `json:"priority" validate:"omitempty,task_priority"`
	DueDate     string       `json:"dueDate" validate:"omitempty,calendar_date"`
	Tags        []string     `json:"tags" validate:"max=50,dive,max=64"`
}

// TaskPatch is a partial update; nil fields are left untouched.
// An empty DueDate clears the due date.
type TaskPatch struct {
	Title       *string       `json:"title,omitempty" validate:"omitempty,min=1,max=500"`
	Description *string       `json:"description,omitempty" validate:"omitempty,max=10000"`
	Status      *TaskStatus   `json:"status,omitempty" validate:"omitempty,task_status"`
	Priority    *TaskPriority `json:"priority,omitempty" validate:"omitempty,task_priority"`
	DueDate     *string       `json:"dueDate,omitempty" validate:"omitempty,calendar_date"`
	Tags        *[]string     `json:"tags,omitempty" validate:"omitempty,max=50,dive,max=64"`
}

// Apply merges the non-nil fields of p into t
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Tags != nil {
		t.Tags = NormalizeTags(*p.Tags)
	}
}
