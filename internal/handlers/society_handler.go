package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/campuslink-app/backend/internal/models"
	"github.com/campuslink-app/backend/internal/push"
	"github.com/campuslink-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SocietyHandler handles society CRUD and follow/unfollow HTTP requests
type SocietyHandler struct {
	societyRepository      repositories.SocietyRepository
	followRepository       repositories.FollowRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
	notifier               *push.Notifier
}

// NewSocietyHandler creates a new SocietyHandler
func NewSocietyHandler(
	societyRepo repositories.SocietyRepository,
	followRepo repositories.FollowRepository,
	userRepo repositories.UserRepository,
	notifRepo repositories.NotificationRepository,
	notifier *push.Notifier,
) *SocietyHandler {
	return &SocietyHandler{
		societyRepository:      societyRepo,
		followRepository:       followRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
		notifier:               notifier,
	}
}

// RegisterSocietyRoutes registers society-related routes
func (h *SocietyHandler) RegisterSocietyRoutes(g *echo.Group) {
	g.POST("/societies", h.CreateSociety)
	g.GET("/societies", h.ListSocieties)
	g.GET("/societies/:id", h.GetSociety)
	g.PUT("/societies/:id", h.UpdateSociety)
	g.DELETE("/societies/:id", h.DeleteSociety)
	g.POST("/societies/:id/follow", h.FollowSociety)
	g.DELETE("/societies/:id/follow", h.UnfollowSociety)
	g.GET("/societies/:id/followers", h.ListFollowers)
}

// EnrichedSociety is a society with the viewer's follow state
type EnrichedSociety struct {
	models.Society
	IsFollowing bool `json:"is_following"`
}

// CreateSociety creates a new society owned by the current user
func (h *SocietyHandler) CreateSociety(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateSocietyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	society := &models.Society{
		InstituteID: req.InstituteID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		LogoURL:     req.LogoURL,
		CreatedBy:   currentUserID,
	}
	if err := h.societyRepository.CreateSociety(society); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create society")
	}
	return c.JSON(http.StatusCreated, society)
}

// ListSocieties returns a paginated discovery listing
func (h *SocietyHandler) ListSocieties(c echo.Context) error {
	instituteID, _ := strconv.ParseUint(c.QueryParam("institute_id"), 10, 32)
	query := c.QueryParam("q")

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	societies, total, err := h.societyRepository.ListSocieties(uint(instituteID), query, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list societies")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"societies": societies},
		"meta": echo.Map{
			"currentPage":  page,
			"totalItems":   total,
			"itemsPerPage": limit,
		},
	})
}

// GetSociety returns one society enriched with the viewer's follow state
func (h *SocietyHandler) GetSociety(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid society ID")
	}

	society, err := h.societyRepository.GetSocietyByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Society not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	enriched := EnrichedSociety{Society: *society}
	if viewerID := getUserIDFromContext(c); viewerID > 0 {
		enriched.IsFollowing, _ = h.followRepository.IsFollowing(viewerID, society.ID)
	}
	return c.JSON(http.StatusOK, enriched)
}

// UpdateSociety updates a society; only its owner or a platform admin may
func (h *SocietyHandler) UpdateSociety(c echo.Context) error {
	society, httpErr := h.ownedSociety(c)
	if httpErr != nil {
		return httpErr
	}

	var req models.UpdateSocietyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Name != "" {
		society.Name = req.Name
	}
	if req.Description != "" {
		society.Description = req.Description
	}
	if req.Category != "" {
		society.Category = req.Category
	}
	if req.LogoURL != "" {
		society.LogoURL = req.LogoURL
	}

	if err := h.societyRepository.UpdateSociety(society); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update society")
	}
	return c.JSON(http.StatusOK, society)
}

// DeleteSociety removes a society; only its owner or a platform admin may
func (h *SocietyHandler) DeleteSociety(c echo.Context) error {
	society, httpErr := h.ownedSociety(c)
	if httpErr != nil {
		return httpErr
	}

	if err := h.societyRepository.DeleteSociety(society.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete society")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// FollowSociety follows a society
func (h *SocietyHandler) FollowSociety(c echo.Context) error {
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

	isFollowing, err := h.followRepository.IsFollowing(currentUserID, society.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	if isFollowing {
		return echo.NewHTTPError(http.StatusConflict, "Already following this society")
	}

	follow := &models.SocietyFollow{
		UserID:    currentUserID,
		SocietyID: society.ID,
	}
	if err := h.followRepository.CreateFollow(follow); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to follow society")
	}

	if err := h.societyRepository.IncrementFollowersCount(society.ID); err != nil {
		logrus.WithError(err).WithField("society_id", society.ID).Warn("Failed to increment followers count")
	} else {
		society.FollowersCount++
	}

	h.notifyOwner(c.Request().Context(), currentUserID, society)

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": true}})
}

// UnfollowSociety unfollows a society
func (h *SocietyHandler) UnfollowSociety(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	societyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid society ID")
	}

	if err := h.followRepository.DeleteFollow(currentUserID, uint(societyID)); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Not following this society")
	}
	if err := h.societyRepository.DecrementFollowersCount(uint(societyID)); err != nil {
		logrus.WithError(err).WithField("society_id", societyID).Warn("Failed to decrement followers count")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": false}})
}

// ListFollowers returns the users following a society
func (h *SocietyHandler) ListFollowers(c echo.Context) error {
	societyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid society ID")
	}

	if _, err := h.societyRepository.GetSocietyByID(uint(societyID)); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Society not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	followerIDs, err := h.followRepository.GetFollowerIDs(uint(societyID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch followers")
	}

	followers := make([]models.UserCompact, 0, len(followerIDs))
	for _, id := range followerIDs {
		if user, err := h.userRepository.GetUserByID(id); err == nil {
			followers = append(followers, user.ToCompact())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"followers": followers},
		"meta":    echo.Map{"total": len(followerIDs)},
	})
}

// notifyOwner records an in-app notification for the society owner and pushes
// it, best-effort.
func (h *SocietyHandler) notifyOwner(ctx context.Context, actorID uint, society *models.Society) {
	if h.notificationRepository == nil || society.CreatedBy == actorID {
		return
	}

	actor, err := h.userRepository.GetUserByID(actorID)
	if err != nil {
		return
	}

	notif := &models.Notification{
		Type:        "follow",
		ActorID:     actorID,
		RecipientID: society.CreatedBy,
		TargetID:    strconv.FormatUint(uint64(society.ID), 10),
		TargetType:  "society",
		Message:     actor.Name + " started following " + society.Name,
	}
	if err := h.notificationRepository.CreateNotification(notif); err != nil {
		return
	}

	if recipient, err := h.userRepository.GetUserByID(society.CreatedBy); err == nil {
		h.notifier.NotifyUser(ctx, recipient, notif)
	}
}

// ownedSociety loads the society from the path and checks the caller owns it
// or is a platform admin.
func (h *SocietyHandler) ownedSociety(c echo.Context) (*models.Society, error) {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid society ID")
	}

	society, err := h.societyRepository.GetSocietyByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Society not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}

	if society.CreatedBy != claims.UserID && claims.Role != models.RoleAdmin {
		return nil, echo.NewHTTPError(http.StatusForbidden, "Only the society owner may do this")
	}
	return society, nil
}
