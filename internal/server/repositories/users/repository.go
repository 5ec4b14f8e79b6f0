// Package users provides access to the user directory.
package users

import (
	"context"

	"github.com/fadhilmh/fadhil-app-api/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// FindByLogin resolves a user where either the email or the username
	// equals login.
	FindByLogin(ctx context.Context, login string) (*models.User, error)

	FindByID(ctx context.Context, id string) (*models.User, error)
}
