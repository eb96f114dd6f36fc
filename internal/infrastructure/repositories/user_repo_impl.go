package repositories

import (
	"context"
	"errors"
	"time"

	"ace-zone.backend/internal/domain/entities"
	domainerrors "ace-zone.backend/internal/domain/errors"
	"ace-zone.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository implements user account and profile data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// SaveProfile upserts the profile for an identity. A new account gets role
// user; an existing account keeps its role.
func (r *UserRepository) SaveProfile(ctx context.Context, userID uuid.UUID, profile *entities.UserProfile) error {
	db := GetDB(ctx, r.db)
	now := time.Now()

	var m models.User
	err := db.WithContext(ctx).Where("id = ?", userID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		m = models.User{
			ID:        userID,
			Role:      string(entities.UserRoleUser),
			CreatedAt: now,
		}
	} else if err != nil {
		return err
	}

	m.HasProfile = true
	m.DisplayName = profile.DisplayName
	m.Email = profile.Email
	m.PhoneNumber = profile.PhoneNumber
	m.GamePlayerID = profile.GamePlayerID
	m.GameName = profile.GameName
	m.RefundPaymentQrCode = profile.RefundPaymentQrCode
	m.UpdatedAt = now

	return db.WithContext(ctx).Save(&m).Error
}

// GetByID gets a user by identity
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// GetByIDs gets users for a set of identities. Missing identities are simply
// absent from the result.
func (r *UserRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ms []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ms).Error; err != nil {
		return nil, err
	}
	users := make([]*entities.User, 0, len(ms))
	for i := range ms {
		users = append(users, toUserEntity(&ms[i]))
	}
	return users, nil
}

// List lists all users
func (r *UserRepository) List(ctx context.Context) ([]*entities.User, error) {
	var ms []models.User
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	users := make([]*entities.User, 0, len(ms))
	for i := range ms {
		users = append(users, toUserEntity(&ms[i]))
	}
	return users, nil
}

// SetRole assigns a role, creating the account row when absent
func (r *UserRepository) SetRole(ctx context.Context, id uuid.UUID, role entities.UserRole) error {
	db := GetDB(ctx, r.db)
	now := time.Now()

	result := db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"role":       string(role),
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	return db.WithContext(ctx).Create(&models.User{
		ID:        id,
		Role:      string(role),
		CreatedAt: now,
		UpdatedAt: now,
	}).Error
}

// Delete removes a user account. Historical match and payment records are
// keyed by identity and stay untouched.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toUserEntity(m *models.User) *entities.User {
	u := &entities.User{
		ID:        m.ID,
		Role:      entities.UserRole(m.Role),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.HasProfile {
		u.Profile = &entities.UserProfile{
			DisplayName:         m.DisplayName,
			Email:               m.Email,
			PhoneNumber:         m.PhoneNumber,
			GamePlayerID:        m.GamePlayerID,
			GameName:            m.GameName,
			RefundPaymentQrCode: m.RefundPaymentQrCode,
		}
	}
	return u
}
