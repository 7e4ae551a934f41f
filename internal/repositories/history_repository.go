package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"devflow/internal/models"
)

// HistoryRepository is append-only: entries are never updated, and are
// deleted only as part of deleting the parent task.
type HistoryRepository interface {
	Append(ctx context.Context, entry *models.TaskHistoryEntry) error
	ListByTask(ctx context.Context, taskID string) ([]models.TaskHistoryEntry, error)
	DeleteByTask(ctx context.Context, taskID string) error
}

type historyRepository struct {
	db *sqlx.DB
}

func NewHistoryRepository(db *sqlx.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Append(ctx context.Context, entry *models.TaskHistoryEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO task_history (id, task_id, action, performed_by, timestamp, old_value, new_value)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.TaskID, entry.Action, entry.PerformedBy, entry.Timestamp,
		entry.OldValue, entry.NewValue,
	)
	return err
}

func (r *historyRepository) ListByTask(ctx context.Context, taskID string) ([]models.TaskHistoryEntry, error) {
	var entries []models.TaskHistoryEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM task_history WHERE task_id = ? ORDER BY timestamp DESC`, taskID)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *historyRepository) DeleteByTask(ctx context.Context, taskID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM task_history WHERE task_id = ?`, taskID)
	return err
}
