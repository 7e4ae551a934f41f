package services

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"devflow/internal/models"
	"devflow/internal/repositories"
)

// DefaultBottleneckThresholdDays is how long a task may sit untouched
// in review or testing before it counts as stuck.
const DefaultBottleneckThresholdDays = 2

// AnalyticsService answers the read-only analytical queries. Every
// call is a pure function of store state at the time of the call.
type AnalyticsService interface {
	TeamMetrics(ctx context.Context) (*models.TeamMetrics, error)
	Velocity(ctx context.Context) ([]models.SprintVelocity, error)
	Bottlenecks(ctx context.Context, thresholdDays int) ([]models.BottleneckTask, error)
	Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)
	Distribution(ctx context.Context) ([]models.DeveloperLoad, error)
}

type analyticsService struct {
	repo repositories.AnalyticsRepository
	now  func() time.Time
}

func NewAnalyticsService(repo repositories.AnalyticsRepository) AnalyticsService {
	return &analyticsService{repo: repo, now: time.Now}
}

// TeamMetrics fans out the eight overview sub-queries concurrently and
// waits for all of them before composing the result. The first failing
// sub-query cancels the rest; there is never a partial aggregate.
func (s *analyticsService) TeamMetrics(ctx context.Context) (*models.TeamMetrics, error) {
	var (
		totalTasks      int
		completedTasks  int
		inProgressTasks int
		totalDevelopers int
		byStatus        []models.StatusCount
		byPriority      []models.PriorityCount
		avgHours        float64
		totalHours      float64
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		totalTasks, err = s.repo.CountTasks(ctx)
		return wrapQuery("total tasks", err)
	})
	g.Go(func() (err error) {
		completedTasks, err = s.repo.CountTasksWithStatus(ctx, models.StatusDone)
		return wrapQuery("completed tasks", err)
	})
	g.Go(func() (err error) {
		inProgressTasks, err = s.repo.CountTasksWithStatus(ctx, models.StatusInProgress)
		return wrapQuery("in-progress tasks", err)
	})
	g.Go(func() (err error) {
		totalDevelopers, err = s.repo.CountDevelopers(ctx)
		return wrapQuery("total developers", err)
	})
	g.Go(func() (err error) {
		byStatus, err = s.repo.TasksByStatus(ctx)
		return wrapQuery("tasks by status", err)
	})
	g.Go(func() (err error) {
		byPriority, err = s.repo.TasksByPriority(ctx)
		return wrapQuery("tasks by priority", err)
	})
	g.Go(func() (err error) {
		avgHours, err = s.repo.AvgCompletionHours(ctx)
		return wrapQuery("avg completion time", err)
	})
	g.Go(func() (err error) {
		totalHours, err = s.repo.TotalHoursLogged(ctx)
		return wrapQuery("total hours logged", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	completionRate := 0.0
	if totalTasks > 0 {
		completionRate = round2(float64(completedTasks) / float64(totalTasks) * 100)
	}

	return &models.TeamMetrics{
		Overview: models.TeamOverview{
			TotalTasks:      totalTasks,
			CompletedTasks:  completedTasks,
			InProgressTasks: inProgressTasks,
			TotalDevelopers: totalDevelopers,
			CompletionRate:  completionRate,
		},
		TasksByStatus:   byStatus,
		TasksByPriority: byPriority,
		Performance: models.TeamPerformance{
			AvgCompletionTime: round2(avgHours),
			TotalHoursLogged:  totalHours,
		},
	}, nil
}

func (s *analyticsService) Velocity(ctx context.Context) ([]models.SprintVelocity, error) {
	rows, err := s.repo.Velocity(ctx)
	if err != nil {
		return nil, wrapQuery("velocity", err)
	}
	return rows, nil
}

func (s *analyticsService) Bottlenecks(ctx context.Context, thresholdDays int) ([]models.BottleneckTask, error) {
	if thresholdDays <= 0 {
		thresholdDays = DefaultBottleneckThresholdDays
	}
	now := s.now().UTC()
	cutoff := now.Add(-time.Duration(thresholdDays) * 24 * time.Hour)

	rows, err := s.repo.Bottlenecks(ctx, cutoff)
	if err != nil {
		return nil, wrapQuery("bottlenecks", err)
	}
	for i := range rows {
		rows[i].DaysStuck = int(now.Sub(rows[i].UpdatedAt).Hours() / 24)
	}
	return rows, nil
}

// Leaderboard ranks developers by all-time completed tasks, breaking
// ties on current streak. Rank is assigned purely by output position:
// exact ties still get distinct, contiguous ranks.
func (s *analyticsService) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	rows, err := s.repo.Leaderboard(ctx)
	if err != nil {
		return nil, wrapQuery("leaderboard", err)
	}
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows, nil
}

func (s *analyticsService) Distribution(ctx context.Context) ([]models.DeveloperLoad, error) {
	rows, err := s.repo.Distribution(ctx)
	if err != nil {
		return nil, wrapQuery("task distribution", err)
	}
	return rows, nil
}

func wrapQuery(op string, err error) error {
	if err == nil {
		return nil
	}
	return &QueryError{Op: op, Err: err}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
