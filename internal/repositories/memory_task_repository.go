package repositories

import (
	"context"
	"strings"
	"sync"

	"taskmanager/internal/apperrors"
	"taskmanager/internal/models"
)

// memoryTaskRepository keeps tasks in a mutex-guarded map plus an
// insertion-order slice, so FindAll returns tasks in creation order.
// It is the default store when no database is configured and the
// store used by the test suites.
type memoryTaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]*models.Task
	order []string
}

func NewMemoryTaskRepository() TaskRepository {
	return &memoryTaskRepository{
		tasks: make(map[string]*models.Task),
		order: make([]string, 0),
	}
}

func (r *memoryTaskRepository) Store(_ context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *task
	r.tasks[task.ID] = &cp
	r.order = append(r.order, task.ID)
	return nil
}

func (r *memoryTaskRepository) FindByID(_ context.Context, id string) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, &apperrors.NotFoundError{ID: id}
	}
	cp := *t
	return &cp, nil
}

func (r *memoryTaskRepository) FindAll(_ context.Context, filter models.TaskFilter) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tasks []models.Task
	for _, id := range r.order {
		t := r.tasks[id]
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && t.Priority != *filter.Priority {
			continue
		}
		tasks = append(tasks, *t)
	}
	return tasks, nil
}

func (r *memoryTaskRepository) FindByTitle(_ context.Context, title string) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if strings.EqualFold(r.tasks[id].Title, title) {
			cp := *r.tasks[id]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memoryTaskRepository) Update(_ context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[task.ID]; !ok {
		return &apperrors.NotFoundError{ID: task.ID}
	}
	cp := *task
	r.tasks[task.ID] = &cp
	return nil
}

func (r *memoryTaskRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return &apperrors.NotFoundError{ID: id}
	}
	delete(r.tasks, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
