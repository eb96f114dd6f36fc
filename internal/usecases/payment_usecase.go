package usecases

import (
	"context"
	"time"

	"ace-zone.backend/internal/domain/entities"
	domainerrors "ace-zone.backend/internal/domain/errors"
	"ace-zone.backend/internal/domain/repositories"
	"ace-zone.backend/pkg/keylock"
	"github.com/google/uuid"
)

// PaymentUsecase owns the payment submission state machine:
//
//	submit -> pending -> approved -> refunded (terminal)
//	               \--> rejected (terminal, resubmission allowed)
type PaymentUsecase struct {
	paymentRepo repositories.PaymentRepository
	matchRepo   repositories.MatchRepository
	uow         repositories.UnitOfWork
	locks       *keylock.KeyLock
}

// NewPaymentUsecase creates a new payment usecase. The lock set is the one
// shared with the booking coordinator: submit holds the match lock so it
// cannot race a concurrent deleteMatch.
func NewPaymentUsecase(
	paymentRepo repositories.PaymentRepository,
	matchRepo repositories.MatchRepository,
	uow repositories.UnitOfWork,
	locks *keylock.KeyLock,
) *PaymentUsecase {
	return &PaymentUsecase{
		paymentRepo: paymentRepo,
		matchRepo:   matchRepo,
		uow:         uow,
		locks:       locks,
	}
}

// SubmitPayment records payment proof for a joined match. Resubmission after
// rejection creates a new pending record; status reads resolve the latest.
func (u *PaymentUsecase) SubmitPayment(ctx context.Context, userID uuid.UUID, input *entities.SubmitPaymentInput) (*entities.PaymentSubmission, error) {
	if input.AmountPaid <= 0 {
		return nil, domainerrors.ErrInvalidInput
	}

	unlock := u.locks.Lock(input.MatchID)
	defer unlock()

	var submission *entities.PaymentSubmission
	err := u.uow.Do(ctx, func(ctx context.Context) error {
		match, err := u.matchRepo.GetByID(ctx, input.MatchID)
		if err != nil {
			return err
		}
		if !match.HasParticipant(userID) {
			return domainerrors.ErrNotJoined
		}

		submission = &entities.PaymentSubmission{
			ID:         uuid.New(),
			MatchID:    input.MatchID,
			UserID:     userID,
			AmountPaid: input.AmountPaid,
			Screenshot: input.Screenshot,
			Status:     entities.PaymentStatusPending,
			Timestamp:  time.Now(),
		}
		return u.paymentRepo.Create(ctx, submission)
	})
	if err != nil {
		return nil, err
	}
	return submission, nil
}

// ApprovePayment approves a pending submission
func (u *PaymentUsecase) ApprovePayment(ctx context.Context, paymentID uuid.UUID) error {
	return u.transition(ctx, paymentID, entities.PaymentStatusApproved)
}

// RejectPayment rejects a pending submission. The player's slot is kept; a
// new submission may follow.
func (u *PaymentUsecase) RejectPayment(ctx context.Context, paymentID uuid.UUID) error {
	return u.transition(ctx, paymentID, entities.PaymentStatusRejected)
}

func (u *PaymentUsecase) transition(ctx context.Context, paymentID uuid.UUID, to entities.PaymentStatus) error {
	// Existence first so a missing record reports NotFound, not a
	// transition failure.
	if _, err := u.paymentRepo.GetByID(ctx, paymentID); err != nil {
		return err
	}
	return u.paymentRepo.Transition(ctx, paymentID, entities.PaymentStatusPending, to)
}

// MarkAsRefunded flags an approved submission as refunded, once. A second
// call fails so duplicate refund issuance is never reported as success.
func (u *PaymentUsecase) MarkAsRefunded(ctx context.Context, paymentID uuid.UUID) error {
	if _, err := u.paymentRepo.GetByID(ctx, paymentID); err != nil {
		return err
	}
	return u.paymentRepo.MarkRefunded(ctx, paymentID)
}

// GetPaymentStatus resolves the caller's most recent submission for a match,
// or nil when none exists.
func (u *PaymentUsecase) GetPaymentStatus(ctx context.Context, userID uuid.UUID, matchID string) (*entities.PaymentSubmission, error) {
	submission, err := u.paymentRepo.GetLatestByUserAndMatch(ctx, userID, matchID)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return submission, nil
}

// GetPendingPayments lists submissions awaiting admin judgment
func (u *PaymentUsecase) GetPendingPayments(ctx context.Context, limit, offset int) ([]*entities.PaymentSubmission, int, error) {
	return u.paymentRepo.ListByStatus(ctx, entities.PaymentStatusPending, limit, offset)
}

// GetUserTransactionHistory lists every submission the user ever made,
// rejected ones included.
func (u *PaymentUsecase) GetUserTransactionHistory(ctx context.Context, userID uuid.UUID) ([]*entities.PaymentSubmission, error) {
	return u.paymentRepo.ListByUser(ctx, userID)
}

// GetAllPayments lists all submissions
func (u *PaymentUsecase) GetAllPayments(ctx context.Context, limit, offset int) ([]*entities.PaymentSubmission, int, error) {
	return u.paymentRepo.List(ctx, limit, offset)
}
