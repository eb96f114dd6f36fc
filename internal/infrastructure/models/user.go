package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role                string    `gorm:"type:varchar(32);not null;default:'user'"`
	HasProfile          bool      `gorm:"not null;default:false"`
	DisplayName         string    `gorm:"type:varchar(100)"`
	Email               string    `gorm:"type:varchar(255)"`
	PhoneNumber         string    `gorm:"type:varchar(32)"`
	GamePlayerID        string    `gorm:"type:varchar(100)"`
	GameName            string    `gorm:"type:varchar(100)"`
	RefundPaymentQrCode string    `gorm:"type:text"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           gorm.DeletedAt `gorm:"index"`
}
