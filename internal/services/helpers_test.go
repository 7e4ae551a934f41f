package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"devflow/internal/db"
	"devflow/internal/models"
	"devflow/internal/repositories"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	database, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// insertDeveloper stores dev directly through the repository, filling
// required fields left blank by the caller.
func insertDeveloper(t *testing.T, repo repositories.DeveloperRepository, dev models.Developer) string {
	t.Helper()
	if dev.ID == "" {
		dev.ID = uuid.New().String()
	}
	if dev.Name == "" {
		dev.Name = "Dev " + dev.ID[:8]
	}
	if dev.Email == "" {
		dev.Email = dev.ID[:8] + "@devflow.test"
	}
	if dev.Role == "" {
		dev.Role = models.RoleBackend
	}
	if dev.JoinedDate.IsZero() {
		dev.JoinedDate = time.Now().UTC()
	}
	if err := repo.Store(context.Background(), &dev); err != nil {
		t.Fatalf("insert developer %s: %v", dev.Name, err)
	}
	return dev.ID
}

// insertTask stores task directly through the repository, so tests can
// stage arbitrary timestamps and statuses without going through the
// service layer.
func insertTask(t *testing.T, repo repositories.TaskRepository, task models.Task) string {
	t.Helper()
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.Title == "" {
		task.Title = "Task " + task.ID[:8]
	}
	if task.Status == "" {
		task.Status = models.StatusBacklog
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if task.Difficulty == 0 {
		task.Difficulty = 3
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = task.CreatedAt
	}
	if err := repo.Store(context.Background(), &task); err != nil {
		t.Fatalf("insert task %q: %v", task.Title, err)
	}
	return task.ID
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }
