package repositories

import (
	"context"

	"ace-zone.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// UserRepository defines user account and profile data operations
type UserRepository interface {
	// SaveProfile upserts the profile for an identity, creating the account
	// with role user when absent.
	SaveProfile(ctx context.Context, userID uuid.UUID, profile *entities.UserProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.User, error)
	List(ctx context.Context) ([]*entities.User, error)
	// SetRole assigns a role, creating the account row when absent.
	SetRole(ctx context.Context, id uuid.UUID, role entities.UserRole) error
	Delete(ctx context.Context, id uuid.UUID) error
}
