package entities

import (
	"time"

	"github.com/google/uuid"
)

// MatchStatus represents match lifecycle status
type MatchStatus string

const (
	MatchStatusOpen       MatchStatus = "open"
	MatchStatusFull       MatchStatus = "full"
	MatchStatusInProgress MatchStatus = "in-progress"
	MatchStatusCompleted  MatchStatus = "completed"
)

// MatchType represents the match format
type MatchType string

const (
	// MatchTypeSolo is a 1v1 match. The only format currently supported.
	MatchTypeSolo MatchType = "solo"
)

// Capacity returns the number of slots for a match type.
func (t MatchType) Capacity() int {
	return 2 // 1v1 only
}

// Match represents a bookable match
type Match struct {
	ID           string      `json:"id"`
	MatchType    MatchType   `json:"matchType"`
	EntryFee     int64       `json:"entryFee"`
	StartTime    time.Time   `json:"startTime"`
	Status       MatchStatus `json:"status"`
	Participants []uuid.UUID `json:"participants"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// Capacity returns the slot capacity of the match.
func (m *Match) Capacity() int {
	return m.MatchType.Capacity()
}

// DerivedStatus reports "full" for an open match whose slots are all taken.
// The stored status stays "open" until an admin advances the lifecycle, so
// in-progress/completed remain authoritative.
func (m *Match) DerivedStatus() MatchStatus {
	if m.Status == MatchStatusOpen && len(m.Participants) >= m.Capacity() {
		return MatchStatusFull
	}
	return m.Status
}

// SlotsLeft returns the number of unclaimed slots.
func (m *Match) SlotsLeft() int {
	left := m.Capacity() - len(m.Participants)
	if left < 0 {
		return 0
	}
	return left
}

// BookAllTotal is the fee charged for claiming every slot of the match.
func (m *Match) BookAllTotal() int64 {
	return m.EntryFee * int64(m.Capacity())
}

// HasParticipant reports whether the identity already holds a slot.
func (m *Match) HasParticipant(userID uuid.UUID) bool {
	for _, p := range m.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// CreateMatchInput represents input for creating a match
type CreateMatchInput struct {
	ID        string    `json:"id" binding:"required"`
	MatchType MatchType `json:"matchType"`
	EntryFee  int64     `json:"entryFee" binding:"required"`
	StartTime time.Time `json:"startTime" binding:"required"`
}

// SetMatchStatusInput represents input for an admin lifecycle transition
type SetMatchStatusInput struct {
	Status MatchStatus `json:"status" binding:"required"`
}

// MatchDetails is the read view of a match with derived fields
type MatchDetails struct {
	*Match
	Status       MatchStatus `json:"status"` // derived, shadows stored status
	SlotsLeft    int         `json:"slotsLeft"`
	Capacity     int         `json:"capacity"`
	BookAllTotal int64       `json:"bookAllTotal"`
}

// NewMatchDetails builds the read view for a match.
func NewMatchDetails(m *Match) *MatchDetails {
	return &MatchDetails{
		Match:        m,
		Status:       m.DerivedStatus(),
		SlotsLeft:    m.SlotsLeft(),
		Capacity:     m.Capacity(),
		BookAllTotal: m.BookAllTotal(),
	}
}
