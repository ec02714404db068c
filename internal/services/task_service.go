package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskmanager/internal/apperrors"
	"taskmanager/internal/models"
	"taskmanager/internal/repositories"
)

// TaskService defines the interface for task-related business logic.
type TaskService interface {
	Create(ctx context.Context, input *models.TaskCreate) (*models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, id string, input *models.TaskUpdate) (*models.Task, error)
	Complete(ctx context.Context, id string) (*models.Task, error)
	Delete(ctx context.Context, id string) error
	Statistics(ctx context.Context) (*models.TaskStatistics, error)
}

type taskService struct {
	repo repositories.TaskRepository
}

// NewTaskService creates a new instance of TaskService.
func NewTaskService(repo repositories.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

func (s *taskService) Create(ctx context.Context, input *models.TaskCreate) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if len(input.Description) > models.MaxDescriptionLen {
		return nil, &apperrors.ValidationError{Field: "description", Reason: "must be at most 1000 characters"}
	}
	status := input.Status
	if status == "" {
		status = models.StatusPending
	}
	if !status.Valid() {
		return nil, &apperrors.ValidationError{Field: "status", Reason: "unknown status"}
	}
	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return nil, &apperrors.ValidationError{Field: "priority", Reason: "unknown priority"}
	}
	if input.DueDate != nil && input.DueDate.Before(time.Now()) {
		return nil, &apperrors.ValidationError{Field: "due_date", Reason: "must be in the future"}
	}

	// Duplicate titles are rejected globally, case-insensitively.
	existing, err := s.repo.FindByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &apperrors.ConflictError{Title: title}
	}

	now := time.Now()
	task := &models.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Store(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id string) (*models.Task, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *taskService) GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *taskService) Update(ctx context.Context, id string, input *models.TaskUpdate) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if err := validateTitle(title); err != nil {
			return nil, err
		}
		other, err := s.repo.FindByTitle(ctx, title)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, &apperrors.ConflictError{Title: title}
		}
		task.Title = title
	}
	if input.Description != nil {
		if len(*input.Description) > models.MaxDescriptionLen {
			return nil, &apperrors.ValidationError{Field: "description", Reason: "must be at most 1000 characters"}
		}
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, &apperrors.ValidationError{Field: "status", Reason: "unknown status"}
		}
		// Transitions are deliberately unrestricted: any status is
		// reachable from any other via an explicit update.
		task.Status = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, &apperrors.ValidationError{Field: "priority", Reason: "unknown priority"}
		}
		task.Priority = *input.Priority
	}
	if input.DueDate != nil {
		if input.DueDate.Before(time.Now()) {
			return nil, &apperrors.ValidationError{Field: "due_date", Reason: "must be in the future"}
		}
		task.DueDate = input.DueDate
	}

	task.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Complete is shorthand for the transition to completed; completing an
// already-completed task is a no-op that still bumps updated_at.
func (s *taskService) Complete(ctx context.Context, id string) (*models.Task, error) {
	completed := models.StatusCompleted
	return s.Update(ctx, id, &models.TaskUpdate{Status: &completed})
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *taskService) Statistics(ctx context.Context) (*models.TaskStatistics, error) {
	tasks, err := s.repo.FindAll(ctx, models.TaskFilter{})
	if err != nil {
		return nil, err
	}

	stats := &models.TaskStatistics{
		Total:      len(tasks),
		ByStatus:   make(map[models.TaskStatus]int),
		ByPriority: make(map[models.TaskPriority]int),
	}

	now := time.Now()
	for _, t := range tasks {
		stats.ByStatus[t.Status]++
		stats.ByPriority[t.Priority]++
		if t.DueDate != nil && t.DueDate.Before(now) && t.Status != models.StatusCompleted {
			stats.Overdue++
		}
	}
	return stats, nil
}

func validateTitle(title string) error {
	if title == "" {
		return &apperrors.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if len(title) > models.MaxTitleLen {
		return &apperrors.ValidationError{Field: "title", Reason: "must be at most 200 characters"}
	}
	return nil
}
