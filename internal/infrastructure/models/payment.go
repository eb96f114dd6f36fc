package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentSubmission struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	MatchID         string     `gorm:"type:varchar(64);index;not null"`
	UserID          uuid.UUID  `gorm:"type:uuid;index;not null"`
	AmountPaid      int64      `gorm:"not null"`
	Screenshot      string     `gorm:"type:text"`
	Status          string     `gorm:"type:varchar(32);not null;default:'pending'"`
	Approved        bool       `gorm:"not null;default:false"`
	Refunded        bool       `gorm:"not null;default:false"`
	RefundTimestamp *time.Time `gorm:"type:timestamp"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}
