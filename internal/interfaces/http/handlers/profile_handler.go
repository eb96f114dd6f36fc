package handlers

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"ace-zone.backend/internal/domain/entities"
	domainerrors "ace-zone.backend/internal/domain/errors"
	"ace-zone.backend/internal/interfaces/http/middleware"
	"ace-zone.backend/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProfileService interface {
	SaveCallerProfile(ctx context.Context, userID uuid.UUID, input *entities.SaveProfileInput) (*entities.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*entities.User, error)
	GetRole(ctx context.Context, userID uuid.UUID) (entities.UserRole, error)
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	ListUsers(ctx context.Context) ([]*entities.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *entities.SaveProfileInput) (*entities.User, error)
	RemoveUser(ctx context.Context, userID uuid.UUID) error
	AssignRole(ctx context.Context, userID uuid.UUID, role entities.UserRole) error
}

// ProfileHandler handles profile and user administration endpoints
type ProfileHandler struct {
	profileUsecase ProfileService
	blobs          BlobUploader
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileUsecase ProfileService, blobs BlobUploader) *ProfileHandler {
	return &ProfileHandler{
		profileUsecase: profileUsecase,
		blobs:          blobs,
	}
}

// SaveProfile upserts the caller's profile. A multipart request may attach a
// refund QR image under "qrCode"; it is uploaded and its URL stored.
// PUT /api/v1/profile
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.SaveProfileInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if fileHeader, err := c.FormFile("qrCode"); err == nil {
			key := "qr-codes/" + uuid.New().String() + filepath.Ext(fileHeader.Filename)
			url, err := h.blobs.Upload(c.Request.Context(), fileHeader, key)
			if err != nil {
				response.Error(c, err)
				return
			}
			input.RefundPaymentQrCode = url
		}
	}

	user, err := h.profileUsecase.SaveCallerProfile(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// GetProfile returns the caller's registration record, null when absent
// GET /api/v1/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	user, err := h.profileUsecase.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// GetRole returns the caller's stored role
// GET /api/v1/profile/role
func (h *ProfileHandler) GetRole(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	role, err := h.profileUsecase.GetRole(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"role": role})
}

// IsAdmin reports whether the caller holds the admin role
// GET /api/v1/profile/is-admin
func (h *ProfileHandler) IsAdmin(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	isAdmin, err := h.profileUsecase.IsAdmin(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"isAdmin": isAdmin})
}

// ListUsers lists every known identity with role and profile
// GET /api/v1/admin/users
func (h *ProfileHandler) ListUsers(c *gin.Context) {
	users, err := h.profileUsecase.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// GetUser returns one user's registration record
// GET /api/v1/admin/users/:id
func (h *ProfileHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	user, err := h.profileUsecase.GetProfile(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if user == nil {
		response.Error(c, domainerrors.NotFound("User not found"))
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// UpdateUser saves a profile on behalf of a user
// PUT /api/v1/admin/users/:id
func (h *ProfileHandler) UpdateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	var input entities.SaveProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.profileUsecase.UpdateProfile(c.Request.Context(), id, &input)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("User not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// DeleteUser removes a registration record
// DELETE /api/v1/admin/users/:id
func (h *ProfileHandler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	if err := h.profileUsecase.RemoveUser(c.Request.Context(), id); err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("User not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// AssignRole assigns a role to an identity
// PUT /api/v1/admin/users/:id/role
func (h *ProfileHandler) AssignRole(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	var input entities.AssignRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.profileUsecase.AssignRole(c.Request.Context(), id, input.Role); err != nil {
		if err == domainerrors.ErrInvalidInput {
			response.Error(c, domainerrors.BadRequest("Role must be admin, user or guest"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"role": input.Role})
}
