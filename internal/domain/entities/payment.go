package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// PaymentStatus represents payment submission status
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusRejected PaymentStatus = "rejected"
)

// PaymentSubmission represents user-asserted proof of an out-of-band UPI
// transfer, awaiting admin judgment.
type PaymentSubmission struct {
	ID         uuid.UUID     `json:"id"`
	MatchID    string        `json:"matchId"`
	UserID     uuid.UUID     `json:"user"`
	AmountPaid int64         `json:"amountPaid"`
	Screenshot string        `json:"screenshot"`
	Status     PaymentStatus `json:"status"`
	// Approved mirrors Status == approved. Kept for compatibility with the
	// client's payment model.
	Approved        bool      `json:"approved"`
	Refunded        bool      `json:"refunded"`
	Timestamp       time.Time `json:"timestamp"`
	RefundTimestamp null.Time `json:"refundTimestamp,omitempty"`
}

// SubmitPaymentInput represents input for submitting payment proof
type SubmitPaymentInput struct {
	MatchID    string `form:"matchId" binding:"required"`
	AmountPaid int64  `form:"amountPaid" binding:"required"`
	// Screenshot is the blob URL, filled in by the handler after upload.
	Screenshot string `form:"-"`
}
