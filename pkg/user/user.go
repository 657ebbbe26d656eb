// Package user manages the admin accounts of a tenant's back office.
package user

import (
	"time"

	"github.com/google/uuid"
)

// CreateRequest is the JSON body for POST /api/v1/users.
type CreateRequest struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name" validate:"required,min=2"`
	Role        string `json:"role" validate:"required"`
	Password    string `json:"password" validate:"required,min=8"`
}

// UpdateRequest is the JSON body for PUT /api/v1/users/:id. Passwords are
// changed through the auth endpoints, not here.
type UpdateRequest struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name" validate:"required,min=2"`
	Role        string `json:"role" validate:"required"`
}

// Response is the JSON response for a single user.
type Response struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
