package service

import (
	"time"

	"todo-list-api/internal/domain"
)

type RegisterInput struct {
	Email                string `json:"email" binding:"required,email,max=255"`
	Password             string `json:"password" binding:"required,min=8"`
	PasswordConfirmation string `json:"passwordConfirmation" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResult struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type UserProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type CategoryInput struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Color       string  `json:"color" binding:"omitempty,max=7"`
}

type CategoryDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Color       string    `json:"color"`
	TaskCount   int64     `json:"taskCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

type TaskCreateInput struct {
	Title       string              `json:"title" binding:"required,max=200"`
	Description *string             `json:"description" binding:"omitempty,max=2000"`
	Priority    domain.TaskPriority `json:"priority"`
	DueDate     *time.Time          `json:"dueDate"`
	CategoryID  *string             `json:"categoryId"`
}

type TaskUpdateInput struct {
	Title       string              `json:"title" binding:"required,max=200"`
	Description *string             `json:"description" binding:"omitempty,max=2000"`
	Status      domain.TaskStatus   `json:"status"`
	Priority    domain.TaskPriority `json:"priority"`
	DueDate     *time.Time          `json:"dueDate"`
	CategoryID  *string             `json:"categoryId"`
}

type TaskDTO struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Description  *string             `json:"description,omitempty"`
	Status       domain.TaskStatus   `json:"status"`
	Priority     domain.TaskPriority `json:"priority"`
	DueDate      *time.Time          `json:"dueDate,omitempty"`
	CompletedAt  *time.Time          `json:"completedAt,omitempty"`
	CategoryID   *string             `json:"categoryId,omitempty"`
	CategoryName *string             `json:"categoryName,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    *time.Time          `json:"updatedAt,omitempty"`
}

type PagedResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
	TotalPages int64 `json:"totalPages"`
}

func totalPages(total int64, pageSize int) int64 {
	if pageSize <= 0 {
		return 0
	}
	return (total + int64(pageSize) - 1) / int64(pageSize)
}
