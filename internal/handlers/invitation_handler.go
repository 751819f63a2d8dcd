package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/campuslink-app/backend/internal/models"
	"github.com/campuslink-app/backend/internal/push"
	"github.com/campuslink-app/backend/internal/repositories"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// InvitationHandler handles society invitation HTTP requests
type InvitationHandler struct {
	invitationRepository   repositories.InvitationRepository
	societyRepository      repositories.SocietyRepository
	followRepository       repositories.FollowRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
	notifier               *push.Notifier
}

// NewInvitationHandler creates a new InvitationHandler
func NewInvitationHandler(
	invitationRepo repositories.InvitationRepository,
	societyRepo repositories.SocietyRepository,
	followRepo repositories.FollowRepository,
	userRepo repositories.UserRepository,
	notifRepo repositories.NotificationRepository,
	notifier *push.Notifier,
) *InvitationHandler {
	return &InvitationHandler{
		invitationRepository:   invitationRepo,
		societyRepository:      societyRepo,
		followRepository:       followRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
		notifier:               notifier,
	}
}

// RegisterInvitationRoutes registers invitation-related routes
func (h *InvitationHandler) RegisterInvitationRoutes(g *echo.Group) {
	g.POST("/societies/:id/invitations", h.CreateInvitation)
	g.GET("/societies/:id/invitations", h.ListInvitations)
	g.POST("/invitations/accept", h.AcceptInvitation)
}

// CreateInvitation issues an invite code for a society; owner or admin only
func (h *InvitationHandler) CreateInvitation(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	societyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid society ID")
	}

	var req models.CreateInvitationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	society, err := h.societyRepository.GetSocietyByID(uint(societyID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Society not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	claims := getClaimsFromContext(c)
	if society.CreatedBy != currentUserID && (claims == nil || claims.Role != models.RoleAdmin) {
		return echo.NewHTTPError(http.StatusForbidden, "Only the society owner can invite members")
	}

	invitation := &models.SocietyInvitation{
		SocietyID: society.ID,
		InviterID: currentUserID,
		Email:     req.Email,
		Code:      uuid.NewString(),
		Status:    models.InvitationStatusPending,
	}
	if err := h.invitationRepository.CreateInvitation(invitation); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create invitation")
	}

	// If the invitee already has an account, notify them in-app
	if invitee, err := h.userRepository.GetUserByEmail(req.Email); err == nil && h.notificationRepository != nil {
		notif := &models.Notification{
			Type:        "invite",
			ActorID:     currentUserID,
			RecipientID: invitee.ID,
			TargetID:    strconv.FormatUint(uint64(society.ID), 10),
			TargetType:  "society",
			Message:     "You were invited to follow " + society.Name,
		}
		if err := h.notificationRepository.CreateNotification(notif); err == nil {
			h.notifier.NotifyUser(c.Request().Context(), invitee, notif)
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": invitation})
}

// ListInvitations returns a society's invitations; owner or admin only
func (h *InvitationHandler) ListInvitations(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	societyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid society ID")
	}

	society, err := h.societyRepository.GetSocietyByID(uint(societyID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Society not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	claims := getClaimsFromContext(c)
	if society.CreatedBy != currentUserID && (claims == nil || claims.Role != models.RoleAdmin) {
		return echo.NewHTTPError(http.StatusForbidden, "Only the society owner can view invitations")
	}

	invitations, err := h.invitationRepository.ListBySocietyID(society.ID, c.QueryParam("status"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch invitations")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"invitations": invitations}})
}

// AcceptInvitationRequest carries the invite code being redeemed
type AcceptInvitationRequest struct {
	Code string `json:"code" validate:"required"`
}

// AcceptInvitation redeems an invite code, following the society for the current user
func (h *InvitationHandler) AcceptInvitation(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req AcceptInvitationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	invitation, err := h.invitationRepository.GetByCode(req.Code)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Invitation not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	if invitation.Status != models.InvitationStatusPending {
		return echo.NewHTTPError(http.StatusConflict, "Invitation is no longer valid")
	}

	following, err := h.followRepository.IsFollowing(currentUserID, invitation.SocietyID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	if !following {
		follow := &models.SocietyFollow{UserID: currentUserID, SocietyID: invitation.SocietyID}
		if err := h.followRepository.CreateFollow(follow); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to follow society")
		}
		if err := h.societyRepository.IncrementFollowersCount(invitation.SocietyID); err != nil {
			logrus.WithError(err).WithField("society_id", invitation.SocietyID).Warn("Failed to increment followers count")
		}
	}

	now := time.Now()
	invitation.Status = models.InvitationStatusAccepted
	invitation.AcceptedAt = &now
	if err := h.invitationRepository.UpdateInvitation(invitation); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update invitation")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"society_id": invitation.SocietyID, "following": true},
	})
}
