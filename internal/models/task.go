package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TaskStatus defines the kanban columns. Transitions are deliberately
// unconstrained: any status is reachable from any other.
type TaskStatus string

const (
	StatusBacklog    TaskStatus = "backlog"
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusReview     TaskStatus = "review"
	StatusTesting    TaskStatus = "testing"
	StatusDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusBacklog, StatusTodo, StatusInProgress, StatusReview, StatusTesting, StatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// TechStack holds technology tags in insertion order.
// Stored as a JSON array inside a text column.
type TechStack []string

func (t TechStack) Value() (driver.Value, error) {
	if t == nil {
		t = TechStack{}
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("encoding tech stack: %w", err)
	}
	return string(b), nil
}

func (t *TechStack) Scan(src interface{}) error {
	return scanJSONColumn(src, t, "tech stack")
}

// Task represents a card on the board. AssignedTo and CreatedBy are
// weak references: deleting a developer leaves them dangling.
type Task struct {
	ID             string       `json:"id" db:"id"`
	Title          string       `json:"title" db:"title"`
	Description    string       `json:"description" db:"description"`
	Status         TaskStatus   `json:"status" db:"status"`
	Priority       TaskPriority `json:"priority" db:"priority"`
	Difficulty     int          `json:"difficulty" db:"difficulty"`
	TechStack      TechStack    `json:"tech_stack" db:"tech_stack"`
	AssignedTo     *string      `json:"assigned_to" db:"assigned_to"`
	CreatedBy      *string      `json:"created_by" db:"created_by"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" db:"updated_at"`
	EstimatedHours float64      `json:"estimated_hours" db:"estimated_hours"`
	ActualHours    float64      `json:"actual_hours" db:"actual_hours"`
	DueDate        *time.Time   `json:"due_date" db:"due_date"`
	CodeSnippet    string       `json:"code_snippet" db:"code_snippet"`
	SprintNumber   *int         `json:"sprint_number" db:"sprint_number"`
}

// TaskPatch lists exactly the mutable task fields for PUT updates.
// Absent fields (nil pointers) are left untouched.
type TaskPatch struct {
	Title          *string       `json:"title,omitempty"`
	Description    *string       `json:"description,omitempty"`
	Status         *TaskStatus   `json:"status,omitempty"`
	Priority       *TaskPriority `json:"priority,omitempty"`
	Difficulty     *int          `json:"difficulty,omitempty"`
	TechStack      *TechStack    `json:"tech_stack,omitempty"`
	AssignedTo     *string       `json:"assigned_to,omitempty"`
	EstimatedHours *float64      `json:"estimated_hours,omitempty"`
	ActualHours    *float64      `json:"actual_hours,omitempty"`
	DueDate        *time.Time    `json:"due_date,omitempty"`
	CodeSnippet    *string       `json:"code_snippet,omitempty"`
	SprintNumber   *int          `json:"sprint_number,omitempty"`
}

func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.Difficulty == nil && p.TechStack == nil &&
		p.AssignedTo == nil && p.EstimatedHours == nil && p.ActualHours == nil &&
		p.DueDate == nil && p.CodeSnippet == nil && p.SprintNumber == nil
}

// TaskFilter defines the available parameters for filtering tasks.
type TaskFilter struct {
	Status       *TaskStatus
	Priority     *TaskPriority
	AssignedTo   *string
	SprintNumber *int
}
