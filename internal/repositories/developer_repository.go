package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"devflow/internal/models"
)

type DeveloperRepository interface {
	Store(ctx context.Context, dev *models.Developer) error
	FindByID(ctx context.Context, id string) (*models.Developer, error)
	FindAll(ctx context.Context) ([]models.Developer, error)
	Update(ctx context.Context, id string, patch models.DeveloperPatch) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type developerRepository struct {
	db *sqlx.DB
}

func NewDeveloperRepository(db *sqlx.DB) DeveloperRepository {
	return &developerRepository{db: db}
}

func (r *developerRepository) Store(ctx context.Context, dev *models.Developer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO developers (id, name, email, avatar_url, role, skills, joined_date,
		                        total_tasks_completed, current_streak, achievement_badges, focus_time_today)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		dev.ID, dev.Name, dev.Email, dev.AvatarURL, dev.Role, dev.Skills, dev.JoinedDate,
		dev.TotalTasksCompleted, dev.CurrentStreak, dev.AchievementBadges, dev.FocusTimeToday,
	)
	return err
}

func (r *developerRepository) FindByID(ctx context.Context, id string) (*models.Developer, error) {
	dev := &models.Developer{}
	err := r.db.GetContext(ctx, dev, `SELECT * FROM developers WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return dev, nil
}

func (r *developerRepository) FindAll(ctx context.Context) ([]models.Developer, error) {
	var devs []models.Developer
	if err := r.db.SelectContext(ctx, &devs, `SELECT * FROM developers`); err != nil {
		return nil, err
	}
	return devs, nil
}

func (r *developerRepository) Update(ctx context.Context, id string, patch models.DeveloperPatch) (int64, error) {
	sets := []string{}
	args := []interface{}{}

	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *patch.Email)
	}
	if patch.AvatarURL != nil {
		sets = append(sets, "avatar_url = ?")
		args = append(args, *patch.AvatarURL)
	}
	if patch.Role != nil {
		sets = append(sets, "role = ?")
		args = append(args, *patch.Role)
	}
	if patch.Skills != nil {
		sets = append(sets, "skills = ?")
		args = append(args, *patch.Skills)
	}
	if patch.TotalTasksCompleted != nil {
		sets = append(sets, "total_tasks_completed = ?")
		args = append(args, *patch.TotalTasksCompleted)
	}
	if patch.CurrentStreak != nil {
		sets = append(sets, "current_streak = ?")
		args = append(args, *patch.CurrentStreak)
	}
	if patch.AchievementBadges != nil {
		sets = append(sets, "achievement_badges = ?")
		args = append(args, *patch.AchievementBadges)
	}
	if patch.FocusTimeToday != nil {
		sets = append(sets, "focus_time_today = ?")
		args = append(args, *patch.FocusTimeToday)
	}
	if len(sets) == 0 {
		return 0, nil
	}

	args = append(args, id)
	res, err := r.db.ExecContext(ctx,
		"UPDATE developers SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes the developer row only. Tasks referencing the
// developer keep their assigned_to/created_by values.
func (r *developerRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM developers WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *developerRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM developers WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
