package repositories

import (
	"context"
	"errors"
	"time"

	"ace-zone.backend/internal/domain/entities"
	domainerrors "ace-zone.backend/internal/domain/errors"
	"ace-zone.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// PaymentRepository implements payment submission data operations
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create creates a new payment submission
func (r *PaymentRepository) Create(ctx context.Context, submission *entities.PaymentSubmission) error {
	m := &models.PaymentSubmission{
		ID:         submission.ID,
		MatchID:    submission.MatchID,
		UserID:     submission.UserID,
		AmountPaid: submission.AmountPaid,
		Screenshot: submission.Screenshot,
		Status:     string(submission.Status),
		Approved:   submission.Approved,
		Refunded:   submission.Refunded,
		CreatedAt:  submission.Timestamp,
		UpdatedAt:  submission.Timestamp,
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	submission.ID = m.ID
	return nil
}

// GetByID gets a payment submission by ID
func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.PaymentSubmission, error) {
	var m models.PaymentSubmission
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toPaymentEntity(&m), nil
}

// GetLatestByUserAndMatch resolves the most recent submission for the pair
func (r *PaymentRepository) GetLatestByUserAndMatch(ctx context.Context, userID uuid.UUID, matchID string) (*entities.PaymentSubmission, error) {
	var m models.PaymentSubmission
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("user_id = ? AND match_id = ?", userID, matchID).
		Order("created_at DESC").
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toPaymentEntity(&m), nil
}

// ListByUser lists all submissions by a user, newest first
func (r *PaymentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.PaymentSubmission, error) {
	var ms []models.PaymentSubmission
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return toPaymentEntities(ms), nil
}

// ListByStatus lists submissions in a status with pagination
func (r *PaymentRepository) ListByStatus(ctx context.Context, status entities.PaymentStatus, limit, offset int) ([]*entities.PaymentSubmission, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.PaymentSubmission{}).
		Where("status = ?", string(status)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var ms []models.PaymentSubmission
	if err := query.Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	return toPaymentEntities(ms), int(total), nil
}

// List lists all submissions with pagination
func (r *PaymentRepository) List(ctx context.Context, limit, offset int) ([]*entities.PaymentSubmission, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.PaymentSubmission{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var ms []models.PaymentSubmission
	if err := query.Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	return toPaymentEntities(ms), int(total), nil
}

// Transition performs a compare-and-set status update
func (r *PaymentRepository) Transition(ctx context.Context, id uuid.UUID, from, to entities.PaymentStatus) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.PaymentSubmission{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{
			"status":     string(to),
			"approved":   to == entities.PaymentStatusApproved,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrInvalidTransition
	}
	return nil
}

// MarkRefunded sets the refunded flag once on an approved submission
func (r *PaymentRepository) MarkRefunded(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.PaymentSubmission{}).
		Where("id = ? AND status = ? AND refunded = ?", id, string(entities.PaymentStatusApproved), false).
		Updates(map[string]interface{}{
			"refunded":         true,
			"refund_timestamp": now,
			"updated_at":       now,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrInvalidTransition
	}
	return nil
}

func toPaymentEntity(m *models.PaymentSubmission) *entities.PaymentSubmission {
	return &entities.PaymentSubmission{
		ID:              m.ID,
		MatchID:         m.MatchID,
		UserID:          m.UserID,
		AmountPaid:      m.AmountPaid,
		Screenshot:      m.Screenshot,
		Status:          entities.PaymentStatus(m.Status),
		Approved:        m.Approved,
		Refunded:        m.Refunded,
		Timestamp:       m.CreatedAt,
		RefundTimestamp: null.TimeFromPtr(m.RefundTimestamp),
	}
}

func toPaymentEntities(ms []models.PaymentSubmission) []*entities.PaymentSubmission {
	out := make([]*entities.PaymentSubmission, 0, len(ms))
	for i := range ms {
		out = append(out, toPaymentEntity(&ms[i]))
	}
	return out
}
