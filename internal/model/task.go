package model

import (
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Rank orders priorities for display; unknown values rank below low.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityUrgent:
		return 4
	}
	return 0
}

func (p Priority) Valid() bool {
	return p.Rank() > 0
}

// Task is the stored form of a card. Placement is ColumnID + Position;
// the task's status is whatever column holds it.
type Task struct {
	ID          string     `gorm:"type:text;primaryKey" yaml:"id"`
	ColumnID    string     `gorm:"type:text;not null;index" yaml:"column"`
	Title       string     `gorm:"not null" yaml:"title"`
	Description string     `yaml:"description"`
	Priority    Priority   `gorm:"type:text;not null" yaml:"priority"`
	DueDate     *time.Time `yaml:"due_date"`
	Assignees   []string   `gorm:"type:jsonb;serializer:json" yaml:"assignees"`
	Progress    int        `gorm:"not null" yaml:"progress"`
	Position    int        `gorm:"not null" yaml:"position"`
}
