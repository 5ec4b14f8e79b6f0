// Package db wires the document database and hands out repositories.
package db

import (
	"context"

	"github.com/fadhilmh/fadhil-app-api/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository

	// Ping verifies the database is reachable. The client connects lazily,
	// so an unreachable database only surfaces here or on first use.
	Ping(ctx context.Context) error

	EnsureIndexes(ctx context.Context) error
	Close(ctx context.Context) error
}
