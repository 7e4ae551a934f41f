package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"devflow/internal/models"
)

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id string) (*models.Task, error)
	FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, id string, patch models.TaskPatch) (int64, error)
	UpdateStatus(ctx context.Context, id string, to models.TaskStatus) (int64, error)
	UpdateAssignee(ctx context.Context, id string, assigneeID string) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	FindByAssignee(ctx context.Context, developerID string, status *models.TaskStatus) ([]models.Task, error)
}

type taskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, status, priority, difficulty, tech_stack,
		                   assigned_to, created_by, created_at, updated_at, estimated_hours,
		                   actual_hours, due_date, code_snippet, sprint_number)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.Title, task.Description, task.Status, task.Priority, task.Difficulty,
		task.TechStack, task.AssignedTo, task.CreatedBy, task.CreatedAt, task.UpdatedAt,
		task.EstimatedHours, task.ActualHours, task.DueDate, task.CodeSnippet, task.SprintNumber,
	)
	return err
}

func (r *taskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	task := &models.Task{}
	err := r.db.GetContext(ctx, task, `SELECT * FROM tasks WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	baseQuery := `SELECT * FROM tasks`

	conditions := []string{}
	args := []interface{}{}

	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *filter.Status)
	}
	if filter.Priority != nil {
		conditions = append(conditions, "priority = ?")
		args = append(args, *filter.Priority)
	}
	if filter.AssignedTo != nil {
		conditions = append(conditions, "assigned_to = ?")
		args = append(args, *filter.AssignedTo)
	}
	if filter.SprintNumber != nil {
		conditions = append(conditions, "sprint_number = ?")
		args = append(args, *filter.SprintNumber)
	}

	if len(conditions) > 0 {
		baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	baseQuery += " ORDER BY created_at DESC"

	var tasks []models.Task
	if err := r.db.SelectContext(ctx, &tasks, baseQuery, args...); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, id string, patch models.TaskPatch) (int64, error) {
	sets := []string{}
	args := []interface{}{}

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *patch.Status)
	}
	if patch.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, *patch.Priority)
	}
	if patch.Difficulty != nil {
		sets = append(sets, "difficulty = ?")
		args = append(args, *patch.Difficulty)
	}
	if patch.TechStack != nil {
		sets = append(sets, "tech_stack = ?")
		args = append(args, *patch.TechStack)
	}
	if patch.AssignedTo != nil {
		sets = append(sets, "assigned_to = ?")
		args = append(args, *patch.AssignedTo)
	}
	if patch.EstimatedHours != nil {
		sets = append(sets, "estimated_hours = ?")
		args = append(args, *patch.EstimatedHours)
	}
	if patch.ActualHours != nil {
		sets = append(sets, "actual_hours = ?")
		args = append(args, *patch.ActualHours)
	}
	if patch.DueDate != nil {
		sets = append(sets, "due_date = ?")
		args = append(args, patch.DueDate.UTC())
	}
	if patch.CodeSnippet != nil {
		sets = append(sets, "code_snippet = ?")
		args = append(args, *patch.CodeSnippet)
	}
	if patch.SprintNumber != nil {
		sets = append(sets, "sprint_number = ?")
		args = append(args, *patch.SprintNumber)
	}
	if len(sets) == 0 {
		return 0, nil
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC())
	args = append(args, id)

	res, err := r.db.ExecContext(ctx,
		"UPDATE tasks SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id string, to models.TaskStatus) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?`, to, time.Now().UTC(), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *taskRepository) UpdateAssignee(ctx context.Context, id string, assigneeID string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET assigned_to = ?, updated_at = ? WHERE id = ?`, assigneeID, time.Now().UTC(), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *taskRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *taskRepository) FindByAssignee(ctx context.Context, developerID string, status *models.TaskStatus) ([]models.Task, error) {
	query := `SELECT * FROM tasks WHERE assigned_to = ?`
	args := []interface{}{developerID}
	if status != nil {
		query += " AND status = ?"
		args = append(args, *status)
	}
	query += " ORDER BY created_at DESC"

	var tasks []models.Task
	if err := r.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, err
	}
	return tasks, nil
}
