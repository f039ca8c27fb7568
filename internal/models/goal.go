package models

// Cadence is an advisory recurrence label; nothing schedules against it
type Cadence string

const (
	CadenceDaily   Cadence = "daily"
	CadenceWeekly  Cadence = "weekly"
	CadenceMonthly Cadence = "monthly"
)

// Goal is a target quantity tracked through a running current value
type Goal struct {
	ID          string  `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Target      float64 `json:"target" yaml:"target"`
	Current     float64 `json:"current" yaml:"current"`
	Unit        string  `json:"unit" yaml:"unit"`
	Cadence     Cadence `json:"cadence" yaml:"cadence"`
	StartDate   string  `json:"startDate" yaml:"startDate"`
	EndDate     string  `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	CompletedAt string  `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
	CreatedAt   string  `json:"createdAt" yaml:"createdAt"`
}

// IsComplete reports whether the goal has reached or exceeded its target
func (g Goal) IsComplete() bool {
	return g.Current >= g.Target
}

// NewGoal holds the caller-supplied fields of a goal being created.
// Current always starts at zero. Empty Cadence defaults to monthly and
// an empty StartDate defaults to the creation date.
type NewGoal struct {
	Title       string  `json:"title" validate:"required,max=500"`
	Description string  `json:"description" validate:"max=10000"`
	Target      float64 `json:"target" validate:"gt=0"`
	Unit        string  `json:"unit" validate:"max=64"`
	Cadence     Cadence `json:"cadence" validate:"omitempty,cadence"`
	StartDate   string  `json:"startDate" validate:"omitempty,calendar_date"`
	EndDate     string  `json:"endDate" validate:"omitempty,calendar_date"`
}

// GoalPatch is a partial update; nil fields are left untouched.
// An empty EndDate clears the end date.
type GoalPatch struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=1,max=500"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=10000"`
	Target      *float64 `json:"target,omitempty" validate:"omitempty,gt=0"`
	Current     *float64 `json:"current,omitempty"`
	Unit        *string  `json:"unit,omitempty" validate:"omitempty,max=64"`
	Cadence     *Cadence `json:"cadence,omitempty" validate:"omitempty,cadence"`
	StartDate   *string  `json:"startDate,omitempty" validate:"omitempty,min=1,calendar_date"`
	EndDate     *string  `json:"endDate,omitempty" validate:"omitempty,calendar_date"`
}

// Apply merges the non-nil fields of p into g
func (p GoalPatch) Apply(g *Goal) {
	if p.Title != nil {
		g.Title = *p.Title
	}
	if p.Description != nil {
		g.Description = *p.Description
	}
	if p.Target != nil {
		g.Target = *p.Target
	}
	if p.Current != nil {
		g.Current = *p.Current
	}
	if p.Unit != nil {
		g.Unit = *p.Unit
	}
	if p.Cadence != nil {
		g.Cadence = *p.Cadence
	}
	if p.StartDate != nil {
		g.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		g.EndDate = *p.EndDate
	}
}
