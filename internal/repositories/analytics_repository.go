package repositories

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"devflow/internal/models"
)

// AnalyticsRepository holds the read-only aggregation queries. Every
// method re-scans the live tables; there is no cached or incrementally
// maintained state behind any of them.
type AnalyticsRepository interface {
	CountTasks(ctx context.Context) (int, error)
	CountTasksWithStatus(ctx context.Context, status models.TaskStatus) (int, error)
	CountDevelopers(ctx context.Context) (int, error)
	TasksByStatus(ctx context.Context) ([]models.StatusCount, error)
	TasksByPriority(ctx context.Context) ([]models.PriorityCount, error)
	AvgCompletionHours(ctx context.Context) (float64, error)
	TotalHoursLogged(ctx context.Context) (float64, error)
	Velocity(ctx context.Context) ([]models.SprintVelocity, error)
	Bottlenecks(ctx context.Context, cutoff time.Time) ([]models.BottleneckTask, error)
	Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)
	Distribution(ctx context.Context) ([]models.DeveloperLoad, error)
	DeveloperTaskStats(ctx context.Context, developerID string) ([]models.StatusHours, error)
}

type analyticsRepository struct {
	db *sqlx.DB
}

func NewAnalyticsRepository(db *sqlx.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) CountTasks(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM tasks`)
	return count, err
}

func (r *analyticsRepository) CountTasksWithStatus(ctx context.Context, status models.TaskStatus) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM tasks WHERE status = ?`, status)
	return count, err
}

func (r *analyticsRepository) CountDevelopers(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM developers`)
	return count, err
}

func (r *analyticsRepository) TasksByStatus(ctx context.Context) ([]models.StatusCount, error) {
	var counts []models.StatusCount
	err := r.db.SelectContext(ctx, &counts,
		`SELECT status, COUNT(*) as count FROM tasks GROUP BY status`)
	return counts, err
}

func (r *analyticsRepository) TasksByPriority(ctx context.Context) ([]models.PriorityCount, error) {
	var counts []models.PriorityCount
	err := r.db.SelectContext(ctx, &counts,
		`SELECT priority, COUNT(*) as count FROM tasks GROUP BY priority`)
	return counts, err
}

func (r *analyticsRepository) AvgCompletionHours(ctx context.Context) (float64, error) {
	var avg float64
	err := r.db.GetContext(ctx, &avg, `
		SELECT COALESCE(AVG(actual_hours), 0)
		FROM tasks
		WHERE status = 'done' AND actual_hours > 0`)
	return avg, err
}

func (r *analyticsRepository) TotalHoursLogged(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.GetContext(ctx, &total,
		`SELECT COALESCE(SUM(actual_hours), 0) FROM tasks WHERE actual_hours > 0`)
	return total, err
}

func (r *analyticsRepository) Velocity(ctx context.Context) ([]models.SprintVelocity, error) {
	var rows []models.SprintVelocity
	err := r.db.SelectContext(ctx, &rows, `
		SELECT
			sprint_number,
			COUNT(*) as total_tasks,
			SUM(CASE WHEN status = 'done' THEN 1 ELSE 0 END) as completed_tasks,
			SUM(CASE WHEN status = 'done' THEN difficulty ELSE 0 END) as story_points_completed,
			SUM(difficulty) as total_story_points
		FROM tasks
		WHERE sprint_number IS NOT NULL
		GROUP BY sprint_number
		ORDER BY sprint_number`)
	return rows, err
}

// Bottlenecks returns review/testing tasks not touched since cutoff,
// oldest first, so the most urgent stuck task leads the list.
func (r *analyticsRepository) Bottlenecks(ctx context.Context, cutoff time.Time) ([]models.BottleneckTask, error) {
	var rows []models.BottleneckTask
	err := r.db.SelectContext(ctx, &rows, `
		SELECT t.*, d.name as developer_name
		FROM tasks t
		LEFT JOIN developers d ON t.assigned_to = d.id
		WHERE t.status IN ('review', 'testing')
		  AND t.updated_at < ?
		ORDER BY t.updated_at ASC`, cutoff.UTC())
	return rows, err
}

func (r *analyticsRepository) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	var rows []models.LeaderboardEntry
	err := r.db.SelectContext(ctx, &rows, `
		SELECT
			d.id,
			d.name,
			d.avatar_url,
			d.role,
			d.skills,
			d.achievement_badges,
			d.total_tasks_completed,
			d.current_streak,
			d.focus_time_today,
			COUNT(t.id) as active_tasks,
			COALESCE(SUM(CASE WHEN t.status = 'done' THEN 1 ELSE 0 END), 0) as completed_this_sprint
		FROM developers d
		LEFT JOIN tasks t ON d.id = t.assigned_to
		GROUP BY d.id
		ORDER BY d.total_tasks_completed DESC, d.current_streak DESC`)
	return rows, err
}

func (r *analyticsRepository) Distribution(ctx context.Context) ([]models.DeveloperLoad, error) {
	var rows []models.DeveloperLoad
	err := r.db.SelectContext(ctx, &rows, `
		SELECT
			d.name,
			d.avatar_url,
			COUNT(t.id) as total_tasks,
			COALESCE(SUM(CASE WHEN t.status = 'done' THEN 1 ELSE 0 END), 0) as completed,
			COALESCE(SUM(CASE WHEN t.status = 'in-progress' THEN 1 ELSE 0 END), 0) as in_progress,
			COALESCE(SUM(CASE WHEN t.status IN ('todo', 'backlog') THEN 1 ELSE 0 END), 0) as pending,
			COALESCE(AVG(t.actual_hours), 0) as avg_hours_per_task
		FROM developers d
		LEFT JOIN tasks t ON d.id = t.assigned_to
		GROUP BY d.id`)
	return rows, err
}

func (r *analyticsRepository) DeveloperTaskStats(ctx context.Context, developerID string) ([]models.StatusHours, error) {
	var rows []models.StatusHours
	err := r.db.SelectContext(ctx, &rows, `
		SELECT
			status,
			COUNT(*) as count,
			COALESCE(SUM(actual_hours), 0) as total_hours
		FROM tasks
		WHERE assigned_to = ?
		GROUP BY status`, developerID)
	return rows, err
}
