package handlers

import (
	"context"
	"net/http"

	"ace-zone.backend/internal/domain/entities"
	domainerrors "ace-zone.backend/internal/domain/errors"
	"ace-zone.backend/internal/interfaces/http/middleware"
	"ace-zone.backend/internal/interfaces/http/response"
	"ace-zone.backend/internal/usecases"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MatchService interface {
	CreateMatch(ctx context.Context, input *entities.CreateMatchInput) (*entities.Match, error)
	GetMatch(ctx context.Context, id string) (*entities.MatchDetails, error)
	ListMatches(ctx context.Context) ([]*entities.MatchDetails, error)
	ListMatchesByStatus(ctx context.Context, status entities.MatchStatus) ([]*entities.MatchDetails, error)
	SetStatus(ctx context.Context, id string, status entities.MatchStatus) error
}

type BookingService interface {
	JoinMatch(ctx context.Context, matchID string, userID uuid.UUID) (*entities.Match, error)
	BookAllSlots(ctx context.Context, matchID string, userID uuid.UUID) (*entities.Match, error)
	DeleteMatch(ctx context.Context, matchID string) error
}

type MatchReportService interface {
	UserMatches(ctx context.Context, userID uuid.UUID) ([]*usecases.UserMatchView, error)
	MatchParticipants(ctx context.Context, matchID string) ([]*usecases.ParticipantView, error)
}

// MatchHandler handles match and slot booking endpoints
type MatchHandler struct {
	matchUsecase   MatchService
	bookingUsecase BookingService
	reportUsecase  MatchReportService
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matchUsecase MatchService, bookingUsecase BookingService, reportUsecase MatchReportService) *MatchHandler {
	return &MatchHandler{
		matchUsecase:   matchUsecase,
		bookingUsecase: bookingUsecase,
		reportUsecase:  reportUsecase,
	}
}

// ListMatches lists matches, optionally filtered by derived status
// GET /api/v1/matches
func (h *MatchHandler) ListMatches(c *gin.Context) {
	var (
		matches []*entities.MatchDetails
		err     error
	)

	if status := c.Query("status"); status != "" {
		matches, err = h.matchUsecase.ListMatchesByStatus(c.Request.Context(), entities.MatchStatus(status))
	} else {
		matches, err = h.matchUsecase.ListMatches(c.Request.Context())
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"matches": matches})
}

// GetMatch gets a match by ID
// GET /api/v1/matches/:id
func (h *MatchHandler) GetMatch(c *gin.Context) {
	match, err := h.matchUsecase.GetMatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if match == nil {
		response.Error(c, domainerrors.NotFound("Match not found"))
		return
	}

	response.Success(c, http.StatusOK, gin.H{"match": match})
}

// JoinMatch reserves one slot for the caller
// POST /api/v1/matches/:id/join
func (h *MatchHandler) JoinMatch(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	match, err := h.bookingUsecase.JoinMatch(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"match": entities.NewMatchDetails(match)})
}

// BookAllSlots reserves every slot of an empty match for the caller
// POST /api/v1/matches/:id/book-all
func (h *MatchHandler) BookAllSlots(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	match, err := h.bookingUsecase.BookAllSlots(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"match": entities.NewMatchDetails(match)})
}

// MyMatches lists the caller's joined matches with payment state
// GET /api/v1/matches/mine
func (h *MatchHandler) MyMatches(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	matches, err := h.reportUsecase.UserMatches(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"matches": matches})
}

// CreateMatch creates a new match
// POST /api/v1/admin/matches
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var input entities.CreateMatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	match, err := h.matchUsecase.CreateMatch(c.Request.Context(), &input)
	if err != nil {
		if err == domainerrors.ErrInvalidInput {
			response.Error(c, domainerrors.BadRequest("Invalid match input"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"match": entities.NewMatchDetails(match)})
}

// DeleteMatch removes a match and its slot reservations
// DELETE /api/v1/admin/matches/:id
func (h *MatchHandler) DeleteMatch(c *gin.Context) {
	if err := h.bookingUsecase.DeleteMatch(c.Request.Context(), c.Param("id")); err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("Match not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// SetMatchStatus performs an admin lifecycle transition
// PUT /api/v1/admin/matches/:id/status
func (h *MatchHandler) SetMatchStatus(c *gin.Context) {
	var input entities.SetMatchStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.matchUsecase.SetStatus(c.Request.Context(), c.Param("id"), input.Status); err != nil {
		if err == domainerrors.ErrInvalidInput {
			response.Error(c, domainerrors.BadRequest("Status must be in-progress or completed"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": input.Status})
}

// MatchParticipants lists the roster of a match with profiles
// GET /api/v1/admin/matches/:id/participants
func (h *MatchHandler) MatchParticipants(c *gin.Context) {
	participants, err := h.reportUsecase.MatchParticipants(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("Match not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"participants": participants})
}
