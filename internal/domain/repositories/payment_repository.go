package repositories

import (
	"context"

	"ace-zone.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// PaymentRepository defines payment submission data operations
type PaymentRepository interface {
	Create(ctx context.Context, submission *entities.PaymentSubmission) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.PaymentSubmission, error)
	// GetLatestByUserAndMatch resolves the most recent submission for the
	// (user, match) pair. ErrNotFound when the pair has no submissions.
	GetLatestByUserAndMatch(ctx context.Context, userID uuid.UUID, matchID string) (*entities.PaymentSubmission, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.PaymentSubmission, error)
	ListByStatus(ctx context.Context, status entities.PaymentStatus, limit, offset int) ([]*entities.PaymentSubmission, int, error)
	List(ctx context.Context, limit, offset int) ([]*entities.PaymentSubmission, int, error)
	// Transition performs a compare-and-set status update. ErrInvalidTransition
	// when the record is no longer in the from status.
	Transition(ctx context.Context, id uuid.UUID, from, to entities.PaymentStatus) error
	// MarkRefunded sets the refunded flag and timestamp. ErrInvalidTransition
	// unless the record is approved and not yet refunded.
	MarkRefunded(ctx context.Context, id uuid.UUID) error
}
