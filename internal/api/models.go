package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/tasktrack/tasktrack-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	FullName string `json:"fullname" validate:"required,min=1,max=255"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// UserResponse is the sanitized representation of a user returned by the
// API. It never carries the password hash.
type UserResponse struct {
	ID        uuid.UUID   `json:"id"`
	FullName  string      `json:"fullname"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	Active    bool        `json:"active"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewUserResponse converts a domain user into its sanitized API form.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      user.Role,
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
	}
}

// AuthResponse defines the successful response for the login endpoint.
type AuthResponse struct {
	// Token is the JWT used for API authorization
	Token string `json:"token"`

	// User is the sanitized account the token was issued for
	User UserResponse `json:"user"`
}

// SetActiveRequest defines the payload for the admin activation toggle.
type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// CreateTaskRequest defines the payload for task creation.
// Status and Priority are optional; empty values select domain defaults.
// DueDate, when present, must be RFC 3339.
type CreateTaskRequest struct {
	Title       string     `json:"title"       validate:"required,min=1,max=255"`
	Description string     `json:"description" validate:"max=4096"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     string     `json:"due_date"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

// UpdateTaskRequest defines the payload for partial task updates.
// Absent fields are left untouched; clear_category detaches the task
// from its category.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *string    `json:"due_date"`
	CategoryID  *uuid.UUID `json:"category_id"`

	// ClearCategory detaches the task from its category.
	ClearCategory bool `json:"clear_category"`
}

// ToggleCompletionRequest defines the payload for the completion toggle.
type ToggleCompletionRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

// CreateCategoryRequest defines the payload for category creation.
type CreateCategoryRequest struct {
	Name        string `json:"name"        validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"max=4096"`
	Color       string `json:"color"       validate:"max=32"`
}

// UpdateCategoryRequest defines the payload for partial category updates.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}
