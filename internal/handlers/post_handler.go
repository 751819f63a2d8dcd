package handlers

import (
	"net/http"
	"strconv"

	"github.com/campuslink-app/backend/internal/feed"
	"github.com/campuslink-app/backend/internal/models"
	"github.com/campuslink-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// PostHandler handles society post HTTP requests
type PostHandler struct {
	postRepository    repositories.PostRepository
	societyRepository repositories.SocietyRepository
	userRepository    repositories.UserRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, societyRepo repositories.SocietyRepository, userRepo repositories.UserRepository) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		societyRepository: societyRepo,
		userRepository:    userRepo,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/societies/:id/posts", h.CreatePost)
	g.GET("/societies/:id/posts", h.ListSocietyPosts)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost publishes a post into a society. Only the society owner or a
// platform admin may post.
func (h *PostHandler) CreatePost(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
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
	if society.CreatedBy != claims.UserID && claims.Role != models.RoleAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "Only the society owner may post")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post := &models.Post{
		SocietyID: society.ID,
		AuthorID:  claims.UserID,
		Content:   req.Content,
		ImageURLs: req.ImageURLs,
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create post")
	}
	return c.JSON(http.StatusCreated, post)
}

// ListSocietyPosts returns one society's posts with cursor pagination,
// using the same cursor format as the home feed.
func (h *PostHandler) ListSocietyPosts(c echo.Context) error {
	societyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid society ID")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 50 {
		limit = 20
	}

	var before *feed.Cursor
	if raw := c.QueryParam("cursor"); raw != "" {
		cur, err := feed.DecodeCursor(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "malformed cursor")
		}
		before = &cur
	}

	posts, err := h.postRepository.GetPostsBySocietyID(c.Request().Context(), uint(societyID), before, int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list posts")
	}

	var nextCursor *string
	if len(posts) == limit {
		cur := feed.EncodeCursor(posts[len(posts)-1])
		nextCursor = &cur
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"posts": posts},
		"cursor":  nextCursor,
	})
}

// GetPost retrieves one post by id
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	return c.JSON(http.StatusOK, post)
}

// UpdatePost edits a post; only its author may
func (h *PostHandler) UpdatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	if post.AuthorID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the author may edit this post")
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Content != "" {
		post.Content = req.Content
	}
	if req.ImageURLs != nil {
		post.ImageURLs = req.ImageURLs
	}

	if err := h.postRepository.UpdatePost(c.Request().Context(), post.ID.Hex(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update post")
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost removes a post; the author, society owner or a platform admin may
func (h *PostHandler) DeletePost(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	allowed := post.AuthorID == claims.UserID || claims.Role == models.RoleAdmin
	if !allowed {
		if society, err := h.societyRepository.GetSocietyByID(post.SocietyID); err == nil {
			allowed = society.CreatedBy == claims.UserID
		}
	}
	if !allowed {
		return echo.NewHTTPError(http.StatusForbidden, "Not allowed to delete this post")
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), post.ID.Hex()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete post")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
