package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"devflow/internal/models"
	"devflow/internal/repositories"
)

func newTaskEnv(t *testing.T) (TaskService, repositories.TaskRepository, repositories.DeveloperRepository) {
	t.Helper()
	database := newTestDB(t)
	taskRepo := repositories.NewTaskRepository(database)
	historyRepo := repositories.NewHistoryRepository(database)
	devRepo := repositories.NewDeveloperRepository(database)
	svc := NewTaskService(taskRepo, historyRepo, devRepo, nil)
	return svc, taskRepo, devRepo
}

func TestCreateTaskDefaults(t *testing.T) {
	svc, _, _ := newTaskEnv(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.Task{Title: "Write docs", ActualHours: 12})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.ID == "" {
		t.Error("no id assigned")
	}
	if created.Status != models.StatusBacklog {
		t.Errorf("status = %q, want backlog", created.Status)
	}
	if created.Priority != models.PriorityMedium {
		t.Errorf("priority = %q, want medium", created.Priority)
	}
	if created.Difficulty != 3 {
		t.Errorf("difficulty = %d, want 3", created.Difficulty)
	}
	if created.ActualHours != 0 {
		t.Errorf("actual_hours = %v, must start at 0 regardless of input", created.ActualHours)
	}
	if created.TechStack == nil {
		t.Error("tech_stack is nil, want empty list")
	}

	entries, err := svc.History(ctx, created.ID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 1 || entries[0].Action != models.ActionCreated {
		t.Fatalf("history after create = %+v, want one created entry", entries)
	}
	if entries[0].NewValue == nil || !strings.Contains(*entries[0].NewValue, "Write docs") {
		t.Errorf("created entry new_value = %v, want title snapshot", entries[0].NewValue)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	svc, _, _ := newTaskEnv(t)
	ctx := context.Background()

	cases := []struct {
		name string
		task models.Task
		want string
	}{
		{"missing title", models.Task{}, "Title is required"},
		{"bad difficulty", models.Task{Title: "x", Difficulty: 6}, "Difficulty must be between 1 and 5"},
		{"bad status", models.Task{Title: "x", Status: "archived"}, "Invalid status"},
		{"bad priority", models.Task{Title: "x", Priority: "urgent"}, "Invalid priority"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, &tc.task)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if verr.Error() != tc.want {
				t.Errorf("message = %q, want %q", verr.Error(), tc.want)
			}
		})
	}
}

func TestTaskTechStackRoundTrip(t *testing.T) {
	svc, _, _ := newTaskEnv(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.Task{
		Title:     "Build widget",
		TechStack: models.TechStack{"React", "Node"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.TechStack) != 2 || got.TechStack[0] != "React" || got.TechStack[1] != "Node" {
		t.Errorf("tech_stack = %v, want [React Node] in order", got.TechStack)
	}
}

func TestUpdateTask(t *testing.T) {
	svc, _, _ := newTaskEnv(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.Task{Title: "before"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	hours := 7.5
	if err := svc.Update(ctx, created.ID, models.TaskPatch{
		Title:       strPtr("after"),
		ActualHours: &hours,
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "after" || got.ActualHours != 7.5 {
		t.Errorf("after update: title=%q actual_hours=%v", got.Title, got.ActualHours)
	}
	if !got.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("updated_at not bumped: %v <= %v", got.UpdatedAt, created.UpdatedAt)
	}

	entries, _ := svc.History(ctx, created.ID)
	found := false
	for _, e := range entries {
		if e.Action == models.ActionUpdated {
			found = true
		}
	}
	if !found {
		t.Errorf("no updated entry in history: %+v", entries)
	}

	if err := svc.Update(ctx, created.ID, models.TaskPatch{}); err == nil {
		t.Error("empty patch accepted, want validation error")
	}
	if err := svc.Update(ctx, "missing", models.TaskPatch{Title: strPtr("x")}); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("update missing task: err = %v, want ErrTaskNotFound", err)
	}
}

func TestUpdateStatusRecordsTransition(t *testing.T) {
	svc, _, _ := newTaskEnv(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.Task{Title: "move me"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	actor := "alice"
	if err := svc.UpdateStatus(ctx, created.ID, models.StatusInProgress, &actor); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	got, _ := svc.GetByID(ctx, created.ID)
	if got.Status != models.StatusInProgress {
		t.Errorf("status = %q, want in-progress", got.Status)
	}

	entries, _ := svc.History(ctx, created.ID)
	var change *models.TaskHistoryEntry
	for i := range entries {
		if entries[i].Action == models.ActionStatusChanged {
			change = &entries[i]
		}
	}
	if change == nil {
		t.Fatalf("no status_changed entry: %+v", entries)
	}
	if change.OldValue == nil || *change.OldValue != "backlog" {
		t.Errorf("old_value = %v, want backlog", change.OldValue)
	}
	if change.NewValue == nil || *change.NewValue != "in-progress" {
		t.Errorf("new_value = %v, want in-progress", change.NewValue)
	}
	if change.PerformedBy == nil || *change.PerformedBy != "alice" {
		t.Errorf("performed_by = %v, want alice", change.PerformedBy)
	}

	if err := svc.UpdateStatus(ctx, created.ID, "archived", nil); err == nil {
		t.Error("invalid status accepted")
	}
	if err := svc.UpdateStatus(ctx, "missing", models.StatusDone, nil); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("missing task: err = %v, want ErrTaskNotFound", err)
	}
}

func TestAssignTask(t *testing.T) {
	svc, _, devRepo := newTaskEnv(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.Task{Title: "assign me"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Assign(ctx, created.ID, "nobody", nil); !errors.Is(err, ErrDeveloperNotFound) {
		t.Errorf("assign to unknown developer: err = %v, want ErrDeveloperNotFound", err)
	}

	devID := insertDeveloper(t, devRepo, models.Developer{Name: "Dana"})
	if err := svc.Assign(ctx, created.ID, devID, nil); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	got, _ := svc.GetByID(ctx, created.ID)
	if got.AssignedTo == nil || *got.AssignedTo != devID {
		t.Errorf("assigned_to = %v, want %s", got.AssignedTo, devID)
	}

	entries, _ := svc.History(ctx, created.ID)
	found := false
	for _, e := range entries {
		if e.Action == models.ActionAssigned && e.NewValue != nil && *e.NewValue == devID {
			found = true
		}
	}
	if !found {
		t.Errorf("no assigned entry for %s: %+v", devID, entries)
	}

	if err := svc.Assign(ctx, "missing", devID, nil); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("assign missing task: err = %v, want ErrTaskNotFound", err)
	}
}

func TestDeleteTaskCascadesHistory(t *testing.T) {
	svc, _, _ := newTaskEnv(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.Task{Title: "doomed"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.UpdateStatus(ctx, created.ID, models.StatusDone, nil); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := svc.GetByID(ctx, created.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("after delete: err = %v, want ErrTaskNotFound", err)
	}
	entries, err := svc.History(ctx, created.ID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("history not cascaded, %d entries remain", len(entries))
	}

	if err := svc.Delete(ctx, created.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("second delete: err = %v, want ErrTaskNotFound", err)
	}
}

func TestGetAllFilters(t *testing.T) {
	svc, taskRepo, devRepo := newTaskEnv(t)
	ctx := context.Background()

	devID := insertDeveloper(t, devRepo, models.Developer{})
	insertTask(t, taskRepo, models.Task{Status: models.StatusDone, Priority: models.PriorityHigh, AssignedTo: &devID, SprintNumber: intPtr(3)})
	insertTask(t, taskRepo, models.Task{Status: models.StatusTodo, Priority: models.PriorityHigh})
	insertTask(t, taskRepo, models.Task{Status: models.StatusTodo, Priority: models.PriorityLow})

	status := models.StatusTodo
	tasks, err := svc.GetAll(ctx, models.TaskFilter{Status: &status})
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("status filter: %d tasks, want 2", len(tasks))
	}

	prio := models.PriorityHigh
	tasks, err = svc.GetAll(ctx, models.TaskFilter{Status: &status, Priority: &prio})
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("combined filter: %d tasks, want 1", len(tasks))
	}

	sprint := 3
	tasks, err = svc.GetAll(ctx, models.TaskFilter{SprintNumber: &sprint, AssignedTo: &devID})
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("sprint+assignee filter: %d tasks, want 1", len(tasks))
	}
}
