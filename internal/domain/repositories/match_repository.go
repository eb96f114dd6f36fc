package repositories

import (
	"context"
	"time"

	"ace-zone.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// MatchRepository defines match data operations
type MatchRepository interface {
	Create(ctx context.Context, match *entities.Match) error
	GetByID(ctx context.Context, id string) (*entities.Match, error)
	List(ctx context.Context) ([]*entities.Match, error)
	ListByStatus(ctx context.Context, status entities.MatchStatus) ([]*entities.Match, error)
	ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*entities.Match, error)
	// ListStartedBefore returns open matches whose start time has passed.
	ListStartedBefore(ctx context.Context, t time.Time) ([]*entities.Match, error)
	// AddParticipants appends slot reservations in order. Capacity and
	// duplicate checks are the coordinator's responsibility.
	AddParticipants(ctx context.Context, matchID string, userIDs []uuid.UUID) error
	UpdateStatus(ctx context.Context, id string, status entities.MatchStatus) error
	// Delete removes the match and its participant rows.
	Delete(ctx context.Context, id string) error
}
