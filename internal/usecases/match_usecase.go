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

// MatchUsecase owns match definitions and lifecycle state
type MatchUsecase struct {
	matchRepo repositories.MatchRepository
	locks     *keylock.KeyLock
}

// NewMatchUsecase creates a new match usecase. The lock set must be shared
// with the booking and payment usecases so every mutation of a match id is
// serialized.
func NewMatchUsecase(matchRepo repositories.MatchRepository, locks *keylock.KeyLock) *MatchUsecase {
	return &MatchUsecase{
		matchRepo: matchRepo,
		locks:     locks,
	}
}

// statusRank orders the admin-driven lifecycle. open and full share a rank:
// full is a derived view, never a stored transition target.
var statusRank = map[entities.MatchStatus]int{
	entities.MatchStatusOpen:       0,
	entities.MatchStatusFull:       0,
	entities.MatchStatusInProgress: 1,
	entities.MatchStatusCompleted:  2,
}

// CreateMatch creates a match with empty participants and status open
func (u *MatchUsecase) CreateMatch(ctx context.Context, input *entities.CreateMatchInput) (*entities.Match, error) {
	matchType := input.MatchType
	if matchType == "" {
		matchType = entities.MatchTypeSolo
	}
	if matchType != entities.MatchTypeSolo {
		return nil, domainerrors.ErrInvalidInput
	}
	if input.EntryFee <= 0 {
		return nil, domainerrors.ErrInvalidInput
	}
	if input.StartTime.IsZero() || input.StartTime.Unix() <= 0 {
		return nil, domainerrors.ErrInvalidInput
	}

	match := &entities.Match{
		ID:           input.ID,
		MatchType:    matchType,
		EntryFee:     input.EntryFee,
		StartTime:    input.StartTime,
		Status:       entities.MatchStatusOpen,
		Participants: []uuid.UUID{},
		CreatedAt:    time.Now(),
	}

	unlock := u.locks.Lock(input.ID)
	defer unlock()

	if err := u.matchRepo.Create(ctx, match); err != nil {
		return nil, err
	}
	return match, nil
}

// GetMatch returns a match, or nil without error when absent
func (u *MatchUsecase) GetMatch(ctx context.Context, id string) (*entities.MatchDetails, error) {
	match, err := u.matchRepo.GetByID(ctx, id)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return entities.NewMatchDetails(match), nil
}

// ListMatches lists all matches
func (u *MatchUsecase) ListMatches(ctx context.Context) ([]*entities.MatchDetails, error) {
	matches, err := u.matchRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toDetails(matches), nil
}

// ListMatchesByStatus lists matches whose derived status equals the given
// status. Filtering on "full" therefore finds booked-out open matches, and
// filtering on "open" excludes them.
func (u *MatchUsecase) ListMatchesByStatus(ctx context.Context, status entities.MatchStatus) ([]*entities.MatchDetails, error) {
	stored := status
	if status == entities.MatchStatusFull {
		stored = entities.MatchStatusOpen
	}
	matches, err := u.matchRepo.ListByStatus(ctx, stored)
	if err != nil {
		return nil, err
	}

	out := make([]*entities.MatchDetails, 0, len(matches))
	for _, m := range matches {
		if m.DerivedStatus() != status {
			continue
		}
		out = append(out, entities.NewMatchDetails(m))
	}
	return out, nil
}

// SetStatus performs an admin lifecycle transition. Only forward transitions
// into in-progress or completed are accepted.
func (u *MatchUsecase) SetStatus(ctx context.Context, id string, status entities.MatchStatus) error {
	if status != entities.MatchStatusInProgress && status != entities.MatchStatusCompleted {
		return domainerrors.ErrInvalidInput
	}

	unlock := u.locks.Lock(id)
	defer unlock()

	match, err := u.matchRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if statusRank[status] <= statusRank[match.Status] {
		return domainerrors.ErrInvalidTransition
	}
	return u.matchRepo.UpdateStatus(ctx, id, status)
}

func toDetails(matches []*entities.Match) []*entities.MatchDetails {
	out := make([]*entities.MatchDetails, 0, len(matches))
	for _, m := range matches {
		out = append(out, entities.NewMatchDetails(m))
	}
	return out
}
