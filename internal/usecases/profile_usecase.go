package usecases

import (
	"context"

	"ace-zone.backend/internal/domain/entities"
	domainerrors "ace-zone.backend/internal/domain/errors"
	"ace-zone.backend/internal/domain/repositories"
	"github.com/google/uuid"
)

// ProfileUsecase owns user registration records and role assignment
type ProfileUsecase struct {
	userRepo repositories.UserRepository
}

// NewProfileUsecase creates a new profile usecase
func NewProfileUsecase(userRepo repositories.UserRepository) *ProfileUsecase {
	return &ProfileUsecase{userRepo: userRepo}
}

// SaveCallerProfile upserts the caller's own profile
func (u *ProfileUsecase) SaveCallerProfile(ctx context.Context, userID uuid.UUID, input *entities.SaveProfileInput) (*entities.User, error) {
	if err := u.userRepo.SaveProfile(ctx, userID, input.Profile()); err != nil {
		return nil, err
	}
	return u.userRepo.GetByID(ctx, userID)
}

// GetProfile returns a user's registration record, or nil when the identity
// never registered.
func (u *ProfileUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// GetRole resolves the stored role for an identity. Unknown identities are
// guests.
func (u *ProfileUsecase) GetRole(ctx context.Context, userID uuid.UUID) (entities.UserRole, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return entities.UserRoleGuest, nil
		}
		return "", err
	}
	return user.Role, nil
}

// IsAdmin reports whether the identity holds the admin role
func (u *ProfileUsecase) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	role, err := u.GetRole(ctx, userID)
	if err != nil {
		return false, err
	}
	return role == entities.UserRoleAdmin, nil
}

// ResolveRole implements the middleware's role resolver
func (u *ProfileUsecase) ResolveRole(ctx context.Context, userID uuid.UUID) (entities.UserRole, error) {
	return u.GetRole(ctx, userID)
}

// ListUsers returns every known (identity, profile) pair
func (u *ProfileUsecase) ListUsers(ctx context.Context) ([]*entities.User, error) {
	return u.userRepo.List(ctx)
}

// UpdateProfile saves a profile on behalf of a user (admin)
func (u *ProfileUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, input *entities.SaveProfileInput) (*entities.User, error) {
	if _, err := u.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if err := u.userRepo.SaveProfile(ctx, userID, input.Profile()); err != nil {
		return nil, err
	}
	return u.userRepo.GetByID(ctx, userID)
}

// RemoveUser deletes a registration record. Match participation and payment
// history stay, keyed by identity.
func (u *ProfileUsecase) RemoveUser(ctx context.Context, userID uuid.UUID) error {
	return u.userRepo.Delete(ctx, userID)
}

// AssignRole assigns a role out of the closed enumeration
func (u *ProfileUsecase) AssignRole(ctx context.Context, userID uuid.UUID, role entities.UserRole) error {
	if !role.Valid() {
		return domainerrors.ErrInvalidInput
	}
	return u.userRepo.SetRole(ctx, userID, role)
}
