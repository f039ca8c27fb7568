package models

// DefaultMetricColor is used when a metric is created without a color
const DefaultMetricColor = "#3b82f6"

// Metric defines a numeric quantity that is logged repeatedly
type Metric struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Unit        string `json:"unit" yaml:"unit"`
	Color       string `json:"color" yaml:"color"`
	CreatedAt   string `json:"createdAt" yaml:"createdAt"`
}

// MetricLog is one dated observation of a metric.
// MetricID is not enforced as a reference.
type MetricLog struct {
	ID       string  `json:"id" yaml:"id"`
	MetricID string  `json:"metricId" yaml:"metricId"`
	Value    float64 `json:"value" yaml:"value"`
	Date     string  `json:"date" yaml:"date"`
	Notes    string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// NewMetric holds the caller-supplied fields of a metric being created
type NewMetric struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=10000"`
	Unit        string `json:"unit" validate:"max=64"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
}

// MetricPatch is a partial update; nil fields are left untouched
type MetricPatch struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=10000"`
	Unit        *string `json:"unit,omitempty" validate:"omitempty,max=64"`
	Color       *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// Apply merges the non-nil fields of p into m
func (p MetricPatch) Apply(m *Metric) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Unit != nil {
		m.Unit = *p.Unit
	}
	if p.Color != nil {
		m.Color = *p.Color
	}
}

// NewMetricLog holds the fields of an observation being recorded.
// An empty Date defaults to the day it is recorded.
type NewMetricLog struct {
	MetricID string  `json:"metricId" validate:"required"`
	Value    float64 `json:"value"`
	Date     string  `json:"date" validate:"omitempty,calendar_date"`
	Notes    string  `json:"notes" validate:"max=2000"`
}
