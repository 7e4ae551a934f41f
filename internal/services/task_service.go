package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"devflow/internal/models"
	"devflow/internal/repositories"
)

// TaskService defines the business logic for board cards. Every write
// is observed by the lifecycle tracker, which appends a history entry
// after the primary write succeeds.
type TaskService interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, id string, patch models.TaskPatch) error
	UpdateStatus(ctx context.Context, id string, to models.TaskStatus, performedBy *string) error
	Assign(ctx context.Context, id string, assigneeID string, performedBy *string) error
	Delete(ctx context.Context, id string) error
	History(ctx context.Context, id string) ([]models.TaskHistoryEntry, error)
}

type taskService struct {
	repo       repositories.TaskRepository
	history    repositories.HistoryRepository
	developers repositories.DeveloperRepository
	notifier   *TelegramService
}

// NewTaskService creates a new TaskService. notifier may be nil when
// Telegram notifications are not configured.
func NewTaskService(
	repo repositories.TaskRepository,
	history repositories.HistoryRepository,
	developers repositories.DeveloperRepository,
	notifier *TelegramService,
) TaskService {
	return &taskService{repo: repo, history: history, developers: developers, notifier: notifier}
}

func (s *taskService) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if task.Title == "" {
		return nil, validation("Title is required")
	}
	if task.Status == "" {
		task.Status = models.StatusBacklog
	}
	if !task.Status.Valid() {
		return nil, validation("Invalid status")
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if !task.Priority.Valid() {
		return nil, validation("Invalid priority")
	}
	if task.Difficulty == 0 {
		task.Difficulty = 3
	}
	if task.Difficulty < 1 || task.Difficulty > 5 {
		return nil, validation("Difficulty must be between 1 and 5")
	}
	if task.TechStack == nil {
		task.TechStack = models.TechStack{}
	}

	task.ID = uuid.New().String()
	// actual_hours always starts at zero; it is only ever set through an
	// explicit update.
	task.ActualHours = 0
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := s.repo.Store(ctx, task); err != nil {
		return nil, err
	}

	newValue := mustJSON(map[string]interface{}{"title": task.Title, "status": task.Status})
	s.appendHistory(ctx, task.ID, models.ActionCreated, task.CreatedBy, nil, &newValue)
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

func (s *taskService) GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *taskService) Update(ctx context.Context, id string, patch models.TaskPatch) error {
	if patch.Empty() {
		return validation("No valid fields to update")
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return validation("Invalid status")
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return validation("Invalid priority")
	}
	if patch.Difficulty != nil && (*patch.Difficulty < 1 || *patch.Difficulty > 5) {
		return validation("Difficulty must be between 1 and 5")
	}

	rows, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrTaskNotFound
	}

	newValue := mustJSON(patch)
	s.appendHistory(ctx, id, models.ActionUpdated, nil, nil, &newValue)
	return nil
}

func (s *taskService) UpdateStatus(ctx context.Context, id string, to models.TaskStatus, performedBy *string) error {
	if to == "" {
		return validation("Status is required")
	}
	if !to.Valid() {
		return validation("Invalid status")
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if _, err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		return err
	}

	oldValue := string(current.Status)
	newValue := string(to)
	s.appendHistory(ctx, id, models.ActionStatusChanged, performedBy, &oldValue, &newValue)
	return nil
}

func (s *taskService) Assign(ctx context.Context, id string, assigneeID string, performedBy *string) error {
	if assigneeID == "" {
		return validation("assigned_to is required")
	}

	assignee, err := s.developers.FindByID(ctx, assigneeID)
	if err != nil {
		return err
	}
	if assignee == nil {
		return ErrDeveloperNotFound
	}

	rows, err := s.repo.UpdateAssignee(ctx, id, assigneeID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrTaskNotFound
	}

	s.appendHistory(ctx, id, models.ActionAssigned, performedBy, nil, &assigneeID)
	s.notifyAssignment(ctx, id, assignee.Name)
	return nil
}

// Delete removes the task and, explicitly, its history rows. History
// cascade is performed here rather than by the storage engine.
func (s *taskService) Delete(ctx context.Context, id string) error {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrTaskNotFound
	}

	if err := s.history.DeleteByTask(ctx, id); err != nil {
		log.Printf("[task][delete][err] cascade history for id=%s: %v", id, err)
	}
	return nil
}

func (s *taskService) History(ctx context.Context, id string) ([]models.TaskHistoryEntry, error) {
	return s.history.ListByTask(ctx, id)
}

// appendHistory records a lifecycle entry after the primary write has
// already succeeded. The append is not transactional with that write;
// a failure here loses the entry and is only logged.
func (s *taskService) appendHistory(ctx context.Context, taskID string, action models.HistoryAction, performedBy, oldValue, newValue *string) {
	entry := &models.TaskHistoryEntry{
		ID:          uuid.New().String(),
		TaskID:      taskID,
		Action:      action,
		PerformedBy: performedBy,
		Timestamp:   time.Now().UTC(),
		OldValue:    oldValue,
		NewValue:    newValue,
	}
	if err := s.history.Append(ctx, entry); err != nil {
		log.Printf("[task][history][err] append action=%s task=%s: %v", action, taskID, err)
	}
}

func (s *taskService) notifyAssignment(ctx context.Context, taskID, developerName string) {
	if s.notifier == nil {
		return
	}
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil || task == nil {
		log.Printf("[task][notify] reload task id=%s failed: %v", taskID, err)
		return
	}
	if err := s.notifier.NotifyAssignment(task, developerName); err != nil {
		log.Printf("[task][notify][err] task=%s: %v", taskID, err)
	}
}

func mustJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
