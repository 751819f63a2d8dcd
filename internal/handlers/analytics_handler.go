package handlers

import (
	"net/http"

	"github.com/campuslink-app/backend/internal/models"
	"github.com/campuslink-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// AnalyticsHandler serves admin-facing platform counters
type AnalyticsHandler struct {
	userRepository    repositories.UserRepository
	societyRepository repositories.SocietyRepository
	postRepository    repositories.PostRepository
	followRepository  repositories.FollowRepository
	reportRepository  repositories.ReportRepository
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(
	userRepo repositories.UserRepository,
	societyRepo repositories.SocietyRepository,
	postRepo repositories.PostRepository,
	followRepo repositories.FollowRepository,
	reportRepo repositories.ReportRepository,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		userRepository:    userRepo,
		societyRepository: societyRepo,
		postRepository:    postRepo,
		followRepository:  followRepo,
		reportRepository:  reportRepo,
	}
}

// RegisterAnalyticsRoutes registers admin analytics routes
func (h *AnalyticsHandler) RegisterAnalyticsRoutes(g *echo.Group) {
	g.GET("/analytics/overview", h.GetOverview)
	g.GET("/analytics/top-societies", h.GetTopSocieties)
}

// GetOverview returns platform-wide totals
func (h *AnalyticsHandler) GetOverview(c echo.Context) error {
	users, err := h.userRepository.CountUsers()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count users")
	}
	societies, err := h.societyRepository.CountSocieties()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count societies")
	}
	posts, err := h.postRepository.CountPosts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count posts")
	}
	follows, err := h.followRepository.CountFollows()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count follows")
	}
	openReports, err := h.reportRepository.CountByStatus(models.ReportStatusOpen)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count reports")
	}
	resolvedReports, err := h.reportRepository.CountByStatus(models.ReportStatusResolved)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count reports")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"users":            users,
			"societies":        societies,
			"posts":            posts,
			"follows":          follows,
			"open_reports":     openReports,
			"resolved_reports": resolvedReports,
		},
	})
}

// GetTopSocieties returns the ten societies with the most followers
func (h *AnalyticsHandler) GetTopSocieties(c echo.Context) error {
	societies, err := h.societyRepository.TopSocietiesByFollowers(10)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch societies")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"societies": societies}})
}
