package models

import "time"

// ReviewStatus defines the possible outcomes of a code review.
type ReviewStatus string

const (
	ReviewPending          ReviewStatus = "pending"
	ReviewApproved         ReviewStatus = "approved"
	ReviewChangesRequested ReviewStatus = "changes_requested"
)

// CodeReview is stored alongside tasks but not yet served by any
// endpoint; the table exists so reviews recorded by other tooling
// survive in the same database.
type CodeReview struct {
	ID         string       `json:"id" db:"id"`
	TaskID     string       `json:"task_id" db:"task_id"`
	ReviewerID string       `json:"reviewer_id" db:"reviewer_id"`
	Status     ReviewStatus `json:"status" db:"status"`
	Comments   string       `json:"comments" db:"comments"`
	ReviewedAt *time.Time   `json:"reviewed_at" db:"reviewed_at"`
}
