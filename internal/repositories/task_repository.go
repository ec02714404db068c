package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"taskmanager/internal/apperrors"
	"taskmanager/internal/models"
)

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id string) (*models.Task, error)
	FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	FindByTitle(ctx context.Context, title string) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) error
}

type taskRepository struct {
	db *sql.DB
}

// NewTaskRepository returns a PostgreSQL-backed TaskRepository.
func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, title, description, status, priority, due_date, created_at, updated_at`

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (id, title, description, status, priority, due_date, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.Priority,
		task.DueDate, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return &apperrors.StorageError{Op: "insert task", Err: err}
	}
	return nil
}

func (r *taskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID, &task.Title, &task.Description, &task.Status, &task.Priority,
		&task.DueDate, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &apperrors.NotFoundError{ID: id}
		}
		return nil, &apperrors.StorageError{Op: "select task", Err: err}
	}
	return task, nil
}

func (r *taskRepository) FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	baseQuery := `SELECT ` + taskColumns + ` FROM tasks`

	conditions := []string{}
	args := []interface{}{}
	argID := 1

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}
	if filter.Priority != nil {
		conditions = append(conditions, fmt.Sprintf("priority = $%d", argID))
		args = append(args, *filter.Priority)
		argID++
	}

	if len(conditions) > 0 {
		baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	baseQuery += " ORDER BY created_at ASC"

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, &apperrors.StorageError{Op: "select tasks", Err: err}
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
			&t.DueDate, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, &apperrors.StorageError{Op: "scan task", Err: err}
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &apperrors.StorageError{Op: "iterate tasks", Err: err}
	}
	return tasks, nil
}

func (r *taskRepository) FindByTitle(ctx context.Context, title string) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE LOWER(title) = LOWER($1)`
	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, title).Scan(
		&task.ID, &task.Title, &task.Description, &task.Status, &task.Priority,
		&task.DueDate, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, &apperrors.StorageError{Op: "select task by title", Err: err}
	}
	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks SET
			title=$1, description=$2, status=$3, priority=$4, due_date=$5, updated_at=$6
		WHERE id=$7`
	res, err := r.db.ExecContext(ctx, query,
		task.Title, task.Description, task.Status, task.Priority,
		task.DueDate, task.UpdatedAt, task.ID,
	)
	if err != nil {
		return &apperrors.StorageError{Op: "update task", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &apperrors.StorageError{Op: "update task", Err: err}
	}
	if affected == 0 {
		return &apperrors.NotFoundError{ID: task.ID}
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return &apperrors.StorageError{Op: "delete task", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &apperrors.StorageError{Op: "delete task", Err: err}
	}
	if affected == 0 {
		return &apperrors.NotFoundError{ID: id}
	}
	return nil
}
