package usecases

import (
	"context"

	"ace-zone.backend/internal/domain/entities"
	domainerrors "ace-zone.backend/internal/domain/errors"
	"ace-zone.backend/internal/domain/repositories"
	"ace-zone.backend/pkg/keylock"
	"github.com/google/uuid"
)

// BookingUsecase is the slot booking coordinator. All participant mutations
// and match deletion for a given match id run under that id's lock, so two
// callers racing for the last slot see exactly one winner.
type BookingUsecase struct {
	matchRepo repositories.MatchRepository
	uow       repositories.UnitOfWork
	locks     *keylock.KeyLock
}

// NewBookingUsecase creates a new booking usecase
func NewBookingUsecase(
	matchRepo repositories.MatchRepository,
	uow repositories.UnitOfWork,
	locks *keylock.KeyLock,
) *BookingUsecase {
	return &BookingUsecase{
		matchRepo: matchRepo,
		uow:       uow,
		locks:     locks,
	}
}

// JoinMatch reserves exactly one slot for the identity
func (u *BookingUsecase) JoinMatch(ctx context.Context, matchID string, userID uuid.UUID) (*entities.Match, error) {
	unlock := u.locks.Lock(matchID)
	defer unlock()

	var joined *entities.Match
	err := u.uow.Do(ctx, func(ctx context.Context) error {
		match, err := u.matchRepo.GetByID(ctx, matchID)
		if err != nil {
			return err
		}
		if match.HasParticipant(userID) {
			return domainerrors.ErrAlreadyJoined
		}
		if len(match.Participants) >= match.Capacity() {
			return domainerrors.ErrMatchFull
		}

		if err := u.matchRepo.AddParticipants(ctx, matchID, []uuid.UUID{userID}); err != nil {
			return err
		}
		match.Participants = append(match.Participants, userID)
		joined = match
		return nil
	})
	if err != nil {
		return nil, err
	}
	return joined, nil
}

// BookAllSlots reserves every slot of an empty match for one identity.
// A match with any existing participant is treated as full for book-all.
func (u *BookingUsecase) BookAllSlots(ctx context.Context, matchID string, userID uuid.UUID) (*entities.Match, error) {
	unlock := u.locks.Lock(matchID)
	defer unlock()

	var booked *entities.Match
	err := u.uow.Do(ctx, func(ctx context.Context) error {
		match, err := u.matchRepo.GetByID(ctx, matchID)
		if err != nil {
			return err
		}
		if match.HasParticipant(userID) {
			return domainerrors.ErrAlreadyJoined
		}
		if len(match.Participants) > 0 {
			return domainerrors.ErrMatchFull
		}

		slots := make([]uuid.UUID, match.Capacity())
		for i := range slots {
			slots[i] = userID
		}
		if err := u.matchRepo.AddParticipants(ctx, matchID, slots); err != nil {
			return err
		}
		match.Participants = slots
		booked = match
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booked, nil
}

// DeleteMatch removes a match under the same lock as joins, so no reservation
// can commit against a match being deleted. Participant rows go with the
// match; payment submissions are retained as history.
func (u *BookingUsecase) DeleteMatch(ctx context.Context, matchID string) error {
	unlock := u.locks.Lock(matchID)
	defer unlock()

	return u.uow.Do(ctx, func(ctx context.Context) error {
		return u.matchRepo.Delete(ctx, matchID)
	})
}
