package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/tasktrack/tasktrack-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
//
// Ownership scoping is NOT the store's job: stores return whatever row the
// ID names, and the service layer compares the owner against the caller.
// List operations are the exception, since they are keyed by user ID.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid.
	// Returns ErrInvalidEntity if a referenced user or category does not
	// exist (foreign key violation).
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Update modifies an existing task. The owner (UserID) is immutable;
	// implementations never write it after creation.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByUser returns all tasks owned by the given user,
	// newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// ListByUserAndStatus returns the user's tasks with the given status,
	// newest first.
	ListByUserAndStatus(ctx context.Context, userID uuid.UUID, status domain.TaskStatus) ([]*domain.Task, error)

	// ListByUserAndPriority returns the user's tasks with the given
	// priority, newest first.
	ListByUserAndPriority(ctx context.Context, userID uuid.UUID, priority domain.TaskPriority) ([]*domain.Task, error)
}
