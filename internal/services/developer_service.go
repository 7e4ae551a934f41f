package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"devflow/internal/models"
	"devflow/internal/repositories"
)

// DeveloperService defines the business logic around the roster.
type DeveloperService interface {
	Create(ctx context.Context, dev *models.Developer) (*models.Developer, error)
	GetByID(ctx context.Context, id string) (*models.Developer, error)
	GetAll(ctx context.Context) ([]models.Developer, error)
	Update(ctx context.Context, id string, patch models.DeveloperPatch) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, id string) (*models.DeveloperStats, error)
	Tasks(ctx context.Context, id string, status *models.TaskStatus) ([]models.Task, error)
}

type developerService struct {
	repo      repositories.DeveloperRepository
	tasks     repositories.TaskRepository
	analytics repositories.AnalyticsRepository
}

func NewDeveloperService(
	repo repositories.DeveloperRepository,
	tasks repositories.TaskRepository,
	analytics repositories.AnalyticsRepository,
) DeveloperService {
	return &developerService{repo: repo, tasks: tasks, analytics: analytics}
}

func (s *developerService) Create(ctx context.Context, dev *models.Developer) (*models.Developer, error) {
	if dev.Name == "" || dev.Email == "" || dev.Role == "" {
		return nil, validation("Name, email, and role are required")
	}
	if !dev.Role.Valid() {
		return nil, validation("Invalid role")
	}

	dev.ID = uuid.New().String()
	dev.JoinedDate = time.Now().UTC()
	if dev.Skills == nil {
		dev.Skills = models.SkillMap{}
	}
	dev.AchievementBadges = models.BadgeList{}
	dev.TotalTasksCompleted = 0
	dev.CurrentStreak = 0
	dev.FocusTimeToday = 0

	if err := s.repo.Store(ctx, dev); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return dev, nil
}

func (s *developerService) GetByID(ctx context.Context, id string) (*models.Developer, error) {
	dev, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dev == nil {
		return nil, ErrDeveloperNotFound
	}
	return dev, nil
}

func (s *developerService) GetAll(ctx context.Context) ([]models.Developer, error) {
	return s.repo.FindAll(ctx)
}

func (s *developerService) Update(ctx context.Context, id string, patch models.DeveloperPatch) error {
	if patch.Empty() {
		return validation("No valid fields to update")
	}
	if patch.Role != nil && !patch.Role.Valid() {
		return validation("Invalid role")
	}

	rows, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailExists
		}
		return err
	}
	if rows == 0 {
		return ErrDeveloperNotFound
	}
	return nil
}

// Delete removes only the developer. Tasks that reference the
// developer keep dangling assigned_to/created_by values; the board
// tolerates these via null-safe joins.
func (s *developerService) Delete(ctx context.Context, id string) error {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrDeveloperNotFound
	}
	return nil
}

func (s *developerService) Stats(ctx context.Context, id string) (*models.DeveloperStats, error) {
	dev, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.analytics.DeveloperTaskStats(ctx, id)
	if err != nil {
		return nil, err
	}

	var totalHours float64
	for _, row := range byStatus {
		totalHours += row.TotalHours
	}

	return &models.DeveloperStats{
		Developer:        *dev,
		TasksByStatus:    byStatus,
		TotalHoursLogged: totalHours,
	}, nil
}

func (s *developerService) Tasks(ctx context.Context, id string, status *models.TaskStatus) ([]models.Task, error) {
	return s.tasks.FindByAssignee(ctx, id, status)
}
