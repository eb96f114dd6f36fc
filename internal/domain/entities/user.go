package entities

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents caller roles
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
	UserRoleGuest UserRole = "guest"
)

// Valid reports whether the role is a member of the closed enumeration.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleUser, UserRoleGuest:
		return true
	}
	return false
}

// UserProfile holds the self-registered player details
type UserProfile struct {
	DisplayName  string `json:"displayName"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phoneNumber"`
	GamePlayerID string `json:"gamePlayerId"`
	GameName     string `json:"gameName"`
	// RefundPaymentQrCode is a blob URL; the engine never interprets it.
	RefundPaymentQrCode string `json:"refundPaymentQrCode"`
}

// User pairs an identity with its role and (optional) profile. Profile is nil
// for an identity that has a role but never self-registered.
type User struct {
	ID        uuid.UUID    `json:"id"`
	Role      UserRole     `json:"role"`
	Profile   *UserProfile `json:"profile,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// SaveProfileInput represents input for saving a profile. Accepted as JSON
// or as a multipart form when a QR image is attached.
type SaveProfileInput struct {
	DisplayName         string `json:"displayName" form:"displayName" binding:"required,min=2,max=100"`
	Email               string `json:"email" form:"email" binding:"required,email"`
	PhoneNumber         string `json:"phoneNumber" form:"phoneNumber" binding:"required"`
	GamePlayerID        string `json:"gamePlayerId" form:"gamePlayerId" binding:"required"`
	GameName            string `json:"gameName" form:"gameName" binding:"required"`
	RefundPaymentQrCode string `json:"refundPaymentQrCode" form:"refundPaymentQrCode"`
}

// Profile converts the input to a profile value.
func (in *SaveProfileInput) Profile() *UserProfile {
	return &UserProfile{
		DisplayName:         in.DisplayName,
		Email:               in.Email,
		PhoneNumber:         in.PhoneNumber,
		GamePlayerID:        in.GamePlayerID,
		GameName:            in.GameName,
		RefundPaymentQrCode: in.RefundPaymentQrCode,
	}
}

// AssignRoleInput represents input for an admin role assignment
type AssignRoleInput struct {
	Role UserRole `json:"role" binding:"required"`
}
