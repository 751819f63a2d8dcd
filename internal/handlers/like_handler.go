package handlers

import (
	"net/http"

	"github.com/campuslink-app/backend/internal/models"
	"github.com/campuslink-app/backend/internal/push"
	"github.com/campuslink-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// LikeHandler handles like/unlike HTTP requests
type LikeHandler struct {
	likeRepository         repositories.LikeRepository
	postRepository         repositories.PostRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
	notifier               *push.Notifier
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(
	likeRepo repositories.LikeRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	notifRepo repositories.NotificationRepository,
	notifier *push.Notifier,
) *LikeHandler {
	return &LikeHandler{
		likeRepository:         likeRepo,
		postRepository:         postRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
		notifier:               notifier,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.LikePost)
	g.DELETE("/posts/:id/like", h.UnlikePost)
}

// LikePost records a like and bumps the post's denormalized counter
func (h *LikeHandler) LikePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	postID := post.ID.Hex()

	liked, err := h.likeRepository.HasUserLikedPost(postID, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	if liked {
		return echo.NewHTTPError(http.StatusConflict, "Post already liked")
	}

	if err := h.likeRepository.CreateLike(&models.Like{PostID: postID, UserID: currentUserID}); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to like post")
	}
	if err := h.postRepository.IncrementLikesCount(c.Request().Context(), postID); err != nil {
		logrus.WithError(err).WithField("post_id", postID).Warn("Failed to increment likes count")
	}

	// Notify the post author, best-effort
	if h.notificationRepository != nil && post.AuthorID != currentUserID {
		if actor, err := h.userRepository.GetUserByID(currentUserID); err == nil {
			notif := &models.Notification{
				Type:        "like",
				ActorID:     currentUserID,
				RecipientID: post.AuthorID,
				TargetID:    postID,
				TargetType:  "post",
				Message:     actor.Name + " liked your post",
			}
			if err := h.notificationRepository.CreateNotification(notif); err == nil {
				if recipient, err := h.userRepository.GetUserByID(post.AuthorID); err == nil {
					h.notifier.NotifyUser(c.Request().Context(), recipient, notif)
				}
			}
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"liked": true, "likes_count": post.LikesCount + 1}})
}

// UnlikePost removes a like and decrements the post's counter
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID := c.Param("id")
	if err := h.likeRepository.DeleteLike(postID, currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Like not found")
	}
	if err := h.postRepository.DecrementLikesCount(c.Request().Context(), postID); err != nil {
		logrus.WithError(err).WithField("post_id", postID).Warn("Failed to decrement likes count")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"liked": false}})
}
