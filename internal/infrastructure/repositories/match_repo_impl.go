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

// MatchRepository implements match data operations
type MatchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// Create creates a new match
func (r *MatchRepository) Create(ctx context.Context, match *entities.Match) error {
	db := GetDB(ctx, r.db)

	var count int64
	if err := db.WithContext(ctx).Model(&models.Match{}).
		Where("id = ?", match.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return domainerrors.ErrDuplicateID
	}

	m := &models.Match{
		ID:        match.ID,
		MatchType: string(match.MatchType),
		EntryFee:  match.EntryFee,
		StartTime: match.StartTime,
		Status:    string(match.Status),
		CreatedAt: match.CreatedAt,
		UpdatedAt: match.CreatedAt,
	}
	return db.WithContext(ctx).Create(m).Error
}

// GetByID gets a match by ID with its participants in slot order
func (r *MatchRepository) GetByID(ctx context.Context, id string) (*entities.Match, error) {
	var m models.Match
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Preload("Participants", func(tx *gorm.DB) *gorm.DB { return tx.Order("slot ASC") }).
		Where("id = ?", id).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toMatchEntity(&m), nil
}

// List lists all matches, newest first
func (r *MatchRepository) List(ctx context.Context) ([]*entities.Match, error) {
	return r.list(ctx, r.db.WithContext(ctx))
}

// ListByStatus lists matches by stored status
func (r *MatchRepository) ListByStatus(ctx context.Context, status entities.MatchStatus) ([]*entities.Match, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("status = ?", string(status)))
}

// ListByParticipant lists matches the user holds a slot in
func (r *MatchRepository) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*entities.Match, error) {
	return r.list(ctx, r.db.WithContext(ctx).
		Where("id IN (?)", r.db.Model(&models.MatchParticipant{}).
			Select("match_id").
			Where("user_id = ?", userID)))
}

// ListStartedBefore lists open matches whose start time has passed
func (r *MatchRepository) ListStartedBefore(ctx context.Context, t time.Time) ([]*entities.Match, error) {
	return r.list(ctx, r.db.WithContext(ctx).
		Where("status = ? AND start_time <= ?", string(entities.MatchStatusOpen), t))
}

func (r *MatchRepository) list(ctx context.Context, q *gorm.DB) ([]*entities.Match, error) {
	var ms []models.Match
	if err := q.
		Preload("Participants", func(tx *gorm.DB) *gorm.DB { return tx.Order("slot ASC") }).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	matches := make([]*entities.Match, 0, len(ms))
	for i := range ms {
		matches = append(matches, toMatchEntity(&ms[i]))
	}
	return matches, nil
}

// AddParticipants appends slot reservations in order
func (r *MatchRepository) AddParticipants(ctx context.Context, matchID string, userIDs []uuid.UUID) error {
	db := GetDB(ctx, r.db)

	var count int64
	if err := db.WithContext(ctx).Model(&models.MatchParticipant{}).
		Where("match_id = ?", matchID).
		Count(&count).Error; err != nil {
		return err
	}

	now := time.Now()
	rows := make([]models.MatchParticipant, 0, len(userIDs))
	for i, userID := range userIDs {
		rows = append(rows, models.MatchParticipant{
			ID:        uuid.New(),
			MatchID:   matchID,
			UserID:    userID,
			Slot:      int(count) + i,
			CreatedAt: now,
		})
	}
	return db.WithContext(ctx).Create(&rows).Error
}

// UpdateStatus sets the stored match status
func (r *MatchRepository) UpdateStatus(ctx context.Context, id string, status entities.MatchStatus) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Match{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes the match and its participant rows
func (r *MatchRepository) Delete(ctx context.Context, id string) error {
	db := GetDB(ctx, r.db)

	result := db.WithContext(ctx).Where("id = ?", id).Delete(&models.Match{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return db.WithContext(ctx).
		Where("match_id = ?", id).
		Delete(&models.MatchParticipant{}).Error
}

func toMatchEntity(m *models.Match) *entities.Match {
	participants := make([]uuid.UUID, 0, len(m.Participants))
	for _, p := range m.Participants {
		participants = append(participants, p.UserID)
	}
	return &entities.Match{
		ID:           m.ID,
		MatchType:    entities.MatchType(m.MatchType),
		EntryFee:     m.EntryFee,
		StartTime:    m.StartTime,
		Status:       entities.MatchStatus(m.Status),
		Participants: participants,
		CreatedAt:    m.CreatedAt,
	}
}
