package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/platform/logger"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

// CreateTaskInput carries the caller-supplied fields for a new task.
// Status and Priority may be empty; domain defaults apply.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	DueDate     *time.Time
	CategoryID  *uuid.UUID
}

// TaskPatch carries a partial update. Nil fields are left untouched.
// Touched enum fields are re-validated; ClearCategory removes the category
// reference (a nil CategoryID alone means "no change").
type TaskPatch struct {
	Title         *string
	Description   *string
	Status        *domain.TaskStatus
	Priority      *domain.TaskPriority
	DueDate       *time.Time
	CategoryID    *uuid.UUID
	ClearCategory bool
}

// TaskService provides ownership-scoped task operations.
type TaskService interface {
	// Create validates the input and stores a new task owned by userID.
	// A referenced category must exist and belong to the same user;
	// otherwise store.ErrCategoryNotFound is returned.
	Create(ctx context.Context, userID uuid.UUID, input CreateTaskInput) (*domain.Task, error)

	// Get retrieves a single task. Returns store.ErrTaskNotFound when the
	// task is absent or owned by another user.
	Get(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// Update applies a partial update to a task owned by userID.
	// Returns store.ErrTaskNotFound when absent or foreign-owned.
	Update(ctx context.Context, userID, taskID uuid.UUID, patch TaskPatch) (*domain.Task, error)

	// Delete removes a task owned by userID.
	// Returns store.ErrTaskNotFound when absent or foreign-owned.
	Delete(ctx context.Context, userID, taskID uuid.UUID) error

	// List returns all tasks owned by userID.
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// ListByStatus returns the user's tasks with the given status.
	// Returns domain.ErrInvalidStatus for an unknown status value.
	ListByStatus(ctx context.Context, userID uuid.UUID, status string) ([]*domain.Task, error)

	// ListByPriority returns the user's tasks with the given priority.
	// Returns domain.ErrInvalidPriority for an unknown priority value.
	ListByPriority(ctx context.Context, userID uuid.UUID, priority string) ([]*domain.Task, error)

	// ToggleCompletion sets the task's completed flag, keeping the status
	// field consistent. Returns store.ErrTaskNotFound when absent or
	// foreign-owned.
	ToggleCompletion(ctx context.Context, userID, taskID uuid.UUID, completed bool) (*domain.Task, error)
}

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	taskStore     store.TaskStore
	categoryStore store.CategoryStore
	logger        *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	taskStore store.TaskStore,
	categoryStore store.CategoryStore,
	logger *slog.Logger,
) (TaskService, error) {
	if taskStore == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", domain.ErrValidation)
	}
	if categoryStore == nil {
		return nil, domain.NewValidationError("categoryStore", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore:     taskStore,
		categoryStore: categoryStore,
		logger:        logger.With(slog.String("component", "task_service")),
	}, nil
}

// ownedTask fetches a task and confirms it belongs to userID. A task owned
// by someone else is reported as not found so the caller cannot probe for
// the existence of other users' resources.
func (s *taskServiceImpl) ownedTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		log := logger.FromContextOrDefault(ctx, s.logger)
		log.Debug("ownership mismatch on task access",
			slog.String("task_id", taskID.String()),
			slog.String("caller_id", userID.String()))
		return nil, store.ErrTaskNotFound
	}
	return task, nil
}

// ownedCategory fetches a category and confirms it belongs to userID,
// with the same not-found masking as ownedTask.
func (s *taskServiceImpl) ownedCategory(ctx context.Context, userID, categoryID uuid.UUID) (*domain.Category, error) {
	category, err := s.categoryStore.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category.UserID != userID {
		return nil, store.ErrCategoryNotFound
	}
	return category, nil
}

// Create implements TaskService.Create.
func (s *taskServiceImpl) Create(ctx context.Context, userID uuid.UUID, input CreateTaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(userID, input.Title, input.Status, input.Priority)
	if err != nil {
		return nil, err
	}
	task.Description = strings.TrimSpace(input.Description)
	task.DueDate = input.DueDate

	if input.CategoryID != nil {
		if _, err := s.ownedCategory(ctx, userID, *input.CategoryID); err != nil {
			return nil, err
		}
		task.CategoryID = input.CategoryID
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		return nil, err
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", userID.String()),
		slog.String("priority", string(task.Priority)))
	return task, nil
}

// Get implements TaskService.Get.
func (s *taskServiceImpl) Get(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	return s.ownedTask(ctx, userID, taskID)
}

// Update implements TaskService.Update.
func (s *taskServiceImpl) Update(ctx context.Context, userID, taskID uuid.UUID, patch TaskPatch) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		task.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		task.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Status != nil {
		task.Status = *patch.Status
		task.Completed = task.Status == domain.TaskStatusCompleted
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}
	if patch.ClearCategory {
		task.CategoryID = nil
	} else if patch.CategoryID != nil {
		if _, err := s.ownedCategory(ctx, userID, *patch.CategoryID); err != nil {
			return nil, err
		}
		task.CategoryID = patch.CategoryID
	}
	task.UpdatedAt = time.Now().UTC()

	// Re-validate touched fields together with the rest of the entity
	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := s.taskStore.Update(ctx, task); err != nil {
		return nil, err
	}

	log.Info("task updated",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", userID.String()))
	return task, nil
}

// Delete implements TaskService.Delete.
func (s *taskServiceImpl) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.ownedTask(ctx, userID, taskID); err != nil {
		return err
	}

	if err := s.taskStore.Delete(ctx, taskID); err != nil {
		return err
	}

	log.Info("task deleted",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// List implements TaskService.List.
func (s *taskServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	return s.taskStore.ListByUser(ctx, userID)
}

// ListByStatus implements TaskService.ListByStatus.
func (s *taskServiceImpl) ListByStatus(ctx context.Context, userID uuid.UUID, status string) ([]*domain.Task, error) {
	parsed, err := domain.ParseTaskStatus(status)
	if err != nil {
		return nil, err
	}
	return s.taskStore.ListByUserAndStatus(ctx, userID, parsed)
}

// ListByPriority implements TaskService.ListByPriority.
func (s *taskServiceImpl) ListByPriority(ctx context.Context, userID uuid.UUID, priority string) ([]*domain.Task, error) {
	parsed, err := domain.ParseTaskPriority(priority)
	if err != nil {
		return nil, err
	}
	return s.taskStore.ListByUserAndPriority(ctx, userID, parsed)
}

// ToggleCompletion implements TaskService.ToggleCompletion.
func (s *taskServiceImpl) ToggleCompletion(ctx context.Context, userID, taskID uuid.UUID, completed bool) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	task.SetCompleted(completed)

	if err := s.taskStore.Update(ctx, task); err != nil {
		return nil, err
	}

	log.Info("task completion toggled",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", userID.String()),
		slog.Bool("completed", completed))
	return task, nil
}
