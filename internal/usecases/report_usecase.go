package usecases

import (
	"context"

	"ace-zone.backend/internal/domain/entities"
	domainerrors "ace-zone.backend/internal/domain/errors"
	"ace-zone.backend/internal/domain/repositories"
	"github.com/google/uuid"
)

// PendingPaymentView is a pending submission enriched with match terms
type PendingPaymentView struct {
	*entities.PaymentSubmission
	EntryFee  int64              `json:"entryFee"`
	MatchType entities.MatchType `json:"matchType"`
}

// UserMatchView is a joined match enriched with the caller's payment state
type UserMatchView struct {
	*entities.MatchDetails
	PaymentStatus *entities.PaymentStatus `json:"paymentStatus,omitempty"`
}

// ParticipantView pairs a slot holder with their profile, when one exists
type ParticipantView struct {
	User    uuid.UUID             `json:"user"`
	Profile *entities.UserProfile `json:"profile,omitempty"`
}

// ReportUsecase is the read-only aggregation over matches, payments and
// profiles. It holds no state of its own.
type ReportUsecase struct {
	matchRepo   repositories.MatchRepository
	paymentRepo repositories.PaymentRepository
	userRepo    repositories.UserRepository
}

// NewReportUsecase creates a new report usecase
func NewReportUsecase(
	matchRepo repositories.MatchRepository,
	paymentRepo repositories.PaymentRepository,
	userRepo repositories.UserRepository,
) *ReportUsecase {
	return &ReportUsecase{
		matchRepo:   matchRepo,
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
	}
}

// PendingPayments lists pending submissions with the entry fee of the match
// they fund. A submission whose match was deleted is still listed, with zero
// match terms.
func (u *ReportUsecase) PendingPayments(ctx context.Context, limit, offset int) ([]*PendingPaymentView, int, error) {
	pending, total, err := u.paymentRepo.ListByStatus(ctx, entities.PaymentStatusPending, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	views := make([]*PendingPaymentView, 0, len(pending))
	for _, p := range pending {
		view := &PendingPaymentView{PaymentSubmission: p}
		if match, err := u.matchRepo.GetByID(ctx, p.MatchID); err == nil {
			view.EntryFee = match.EntryFee
			view.MatchType = match.MatchType
		} else if err != domainerrors.ErrNotFound {
			return nil, 0, err
		}
		views = append(views, view)
	}
	return views, total, nil
}

// UserMatches lists the matches the user holds a slot in, each with the
// user's current payment status for that match.
func (u *ReportUsecase) UserMatches(ctx context.Context, userID uuid.UUID) ([]*UserMatchView, error) {
	matches, err := u.matchRepo.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]*UserMatchView, 0, len(matches))
	for _, m := range matches {
		view := &UserMatchView{MatchDetails: entities.NewMatchDetails(m)}
		submission, err := u.paymentRepo.GetLatestByUserAndMatch(ctx, userID, m.ID)
		if err == nil {
			status := submission.Status
			view.PaymentStatus = &status
		} else if err != domainerrors.ErrNotFound {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// MatchParticipants lists the roster of a match with profile data. A
// participant without a profile record renders with a nil profile rather
// than failing the read.
func (u *ReportUsecase) MatchParticipants(ctx context.Context, matchID string) ([]*ParticipantView, error) {
	match, err := u.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	users, err := u.userRepo.GetByIDs(ctx, match.Participants)
	if err != nil {
		return nil, err
	}
	profiles := make(map[uuid.UUID]*entities.UserProfile, len(users))
	for _, usr := range users {
		profiles[usr.ID] = usr.Profile
	}

	views := make([]*ParticipantView, 0, len(match.Participants))
	for _, p := range match.Participants {
		views = append(views, &ParticipantView{
			User:    p,
			Profile: profiles[p],
		})
	}
	return views, nil
}
