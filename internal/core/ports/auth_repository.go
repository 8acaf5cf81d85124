package ports

import (
	"context"

	"github.com/parkit/parking-system/internal/core/domain"
)

// AuthRepository defines the interface for operator account persistence.
type AuthRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
