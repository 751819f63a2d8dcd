package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/campuslink-app/backend/internal/feed"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// FeedHandler handles home-feed HTTP requests
type FeedHandler struct {
	assembler *feed.Assembler
	log       *logrus.Logger
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(assembler *feed.Assembler, log *logrus.Logger) *FeedHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &FeedHandler{assembler: assembler, log: log}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/home-feed", h.GetHomeFeed)
}

// GetHomeFeed returns one interleaved feed page for the current user
func (h *FeedHandler) GetHomeFeed(c echo.Context) error {
	viewerID := getUserIDFromContext(c)
	if viewerID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	limit := feed.DefaultLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
		}
		limit = n
	}

	resp, err := h.assembler.Build(c.Request().Context(), viewerID, limit, c.QueryParam("cursor"))
	if err != nil {
		switch {
		case errors.Is(err, feed.ErrInvalidLimit):
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be between 1 and 50")
		case errors.Is(err, feed.ErrInvalidCursor):
			return echo.NewHTTPError(http.StatusBadRequest, "malformed cursor")
		default:
			h.log.WithError(err).WithField("viewer_id", viewerID).Error("home feed assembly failed")
			return echo.NewHTTPError(http.StatusBadGateway, "Feed is temporarily unavailable")
		}
	}

	return c.JSON(http.StatusOK, resp)
}
