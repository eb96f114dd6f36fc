package models

import (
	"time"

	"github.com/google/uuid"
)

// Match rows are hard-deleted: a removed match frees its id for reuse, so no
// DeletedAt column here.
type Match struct {
	ID        string    `gorm:"type:varchar(64);primaryKey"`
	MatchType string    `gorm:"type:varchar(32);not null;default:'solo'"`
	EntryFee  int64     `gorm:"not null"`
	StartTime time.Time `gorm:"not null"`
	Status    string    `gorm:"type:varchar(32);not null;default:'open'"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Participants []MatchParticipant `gorm:"foreignKey:MatchID"`
}

// MatchParticipant is one reserved slot. Slot preserves reservation order;
// book-all writes capacity rows carrying the same user id.
type MatchParticipant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	MatchID   string    `gorm:"type:varchar(64);index;not null"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Slot      int       `gorm:"not null"`
	CreatedAt time.Time
}
