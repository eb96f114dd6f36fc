package handlers

import (
	"context"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"ace-zone.backend/internal/domain/entities"
	domainerrors "ace-zone.backend/internal/domain/errors"
	"ace-zone.backend/internal/interfaces/http/middleware"
	"ace-zone.backend/internal/interfaces/http/response"
	"ace-zone.backend/internal/usecases"
	"ace-zone.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxScreenshotSize bounds proof uploads to 8 MiB
const maxScreenshotSize = 8 << 20

type PaymentService interface {
	SubmitPayment(ctx context.Context, userID uuid.UUID, input *entities.SubmitPaymentInput) (*entities.PaymentSubmission, error)
	GetPaymentStatus(ctx context.Context, userID uuid.UUID, matchID string) (*entities.PaymentSubmission, error)
	GetUserTransactionHistory(ctx context.Context, userID uuid.UUID) ([]*entities.PaymentSubmission, error)
	ApprovePayment(ctx context.Context, paymentID uuid.UUID) error
	RejectPayment(ctx context.Context, paymentID uuid.UUID) error
	MarkAsRefunded(ctx context.Context, paymentID uuid.UUID) error
	GetAllPayments(ctx context.Context, limit, offset int) ([]*entities.PaymentSubmission, int, error)
}

type PaymentReportService interface {
	PendingPayments(ctx context.Context, limit, offset int) ([]*usecases.PendingPaymentView, int, error)
}

type BlobUploader interface {
	Upload(ctx context.Context, fileHeader *multipart.FileHeader, key string) (string, error)
}

// PaymentHandler handles payment proof endpoints
type PaymentHandler struct {
	paymentUsecase PaymentService
	reportUsecase  PaymentReportService
	blobs          BlobUploader
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentUsecase PaymentService, reportUsecase PaymentReportService, blobs BlobUploader) *PaymentHandler {
	return &PaymentHandler{
		paymentUsecase: paymentUsecase,
		reportUsecase:  reportUsecase,
		blobs:          blobs,
	}
}

// SubmitPayment records payment proof with a screenshot upload
// POST /api/v1/payments
func (h *PaymentHandler) SubmitPayment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.SubmitPaymentInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	fileHeader, err := c.FormFile("screenshot")
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Screenshot file is required"))
		return
	}
	if fileHeader.Size > maxScreenshotSize {
		response.Error(c, domainerrors.BadRequest("Screenshot exceeds the 8MB limit"))
		return
	}

	key := "screenshots/" + uuid.New().String() + filepath.Ext(fileHeader.Filename)
	url, err := h.blobs.Upload(c.Request.Context(), fileHeader, key)
	if err != nil {
		response.Error(c, err)
		return
	}
	input.Screenshot = url

	submission, err := h.paymentUsecase.SubmitPayment(c.Request.Context(), userID, &input)
	if err != nil {
		switch err {
		case domainerrors.ErrNotFound:
			response.Error(c, domainerrors.NotFound("Match not found"))
		case domainerrors.ErrNotJoined:
			response.Error(c, domainerrors.NewAppError(http.StatusConflict, "Join the match before submitting payment", err))
		case domainerrors.ErrInvalidInput:
			response.Error(c, domainerrors.BadRequest("Amount must be positive"))
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"payment": submission})
}

// GetPaymentStatus resolves the caller's latest submission for a match.
// Returns a null payment when nothing was submitted.
// GET /api/v1/payments/status/:matchId
func (h *PaymentHandler) GetPaymentStatus(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	submission, err := h.paymentUsecase.GetPaymentStatus(c.Request.Context(), userID, c.Param("matchId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payment": submission})
}

// TransactionHistory lists every submission the caller ever made
// GET /api/v1/payments/history
func (h *PaymentHandler) TransactionHistory(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	payments, err := h.paymentUsecase.GetUserTransactionHistory(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payments": payments})
}

// ListPayments lists all submissions, paginated
// GET /api/v1/admin/payments
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	params := paginationFromQuery(c)

	payments, total, err := h.paymentUsecase.GetAllPayments(c.Request.Context(), params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"payments":   payments,
		"pagination": utils.CalculateMeta(int64(total), params.Page, params.Limit),
	})
}

// PendingPayments lists submissions awaiting judgment with match terms
// GET /api/v1/admin/payments/pending
func (h *PaymentHandler) PendingPayments(c *gin.Context) {
	params := paginationFromQuery(c)

	payments, total, err := h.reportUsecase.PendingPayments(c.Request.Context(), params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"payments":   payments,
		"pagination": utils.CalculateMeta(int64(total), params.Page, params.Limit),
	})
}

// ApprovePayment approves a pending submission
// PUT /api/v1/admin/payments/:id/approve
func (h *PaymentHandler) ApprovePayment(c *gin.Context) {
	h.judge(c, h.paymentUsecase.ApprovePayment)
}

// RejectPayment rejects a pending submission
// PUT /api/v1/admin/payments/:id/reject
func (h *PaymentHandler) RejectPayment(c *gin.Context) {
	h.judge(c, h.paymentUsecase.RejectPayment)
}

// RefundPayment marks an approved submission as refunded
// PUT /api/v1/admin/payments/:id/refund
func (h *PaymentHandler) RefundPayment(c *gin.Context) {
	h.judge(c, h.paymentUsecase.MarkAsRefunded)
}

func (h *PaymentHandler) judge(c *gin.Context, fn func(ctx context.Context, paymentID uuid.UUID) error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid payment ID"))
		return
	}

	if err := fn(c.Request.Context(), id); err != nil {
		switch err {
		case domainerrors.ErrNotFound:
			response.Error(c, domainerrors.NotFound("Payment not found"))
		case domainerrors.ErrInvalidTransition:
			response.Error(c, domainerrors.Conflict("Payment is not in a state that allows this action", err))
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

func paginationFromQuery(c *gin.Context) utils.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	return utils.GetPaginationParams(page, limit)
}
