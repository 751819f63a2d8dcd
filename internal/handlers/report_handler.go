package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/campuslink-app/backend/internal/models"
	"github.com/campuslink-app/backend/internal/push"
	"github.com/campuslink-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ReportHandler handles moderation report HTTP requests
type ReportHandler struct {
	reportRepository       repositories.ReportRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
	notifier               *push.Notifier
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(
	reportRepo repositories.ReportRepository,
	userRepo repositories.UserRepository,
	notifRepo repositories.NotificationRepository,
	notifier *push.Notifier,
) *ReportHandler {
	return &ReportHandler{
		reportRepository:       reportRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
		notifier:               notifier,
	}
}

// RegisterReportRoutes registers the user-facing report route
func (h *ReportHandler) RegisterReportRoutes(g *echo.Group) {
	g.POST("/reports", h.CreateReport)
}

// RegisterAdminReportRoutes registers admin-only moderation routes
func (h *ReportHandler) RegisterAdminReportRoutes(g *echo.Group) {
	g.GET("/reports", h.ListReports)
	g.PUT("/reports/:id/resolve", h.ResolveReport)
}

// CreateReport files a moderation report
func (h *ReportHandler) CreateReport(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	report := &models.Report{
		ReporterID: currentUserID,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		Reason:     req.Reason,
		Details:    req.Details,
		Status:     models.ReportStatusOpen,
	}
	if err := h.reportRepository.CreateReport(report); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create report")
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": report})
}

// ListReports returns reports filtered by status, newest first
func (h *ReportHandler) ListReports(c echo.Context) error {
	status := c.QueryParam("status")
	if status != "" && status != models.ReportStatusOpen && status != models.ReportStatusResolved {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid status filter")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	reports, total, err := h.reportRepository.ListReports(status, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch reports")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"reports": reports},
		"meta": echo.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// ResolveReport closes an open report and notifies the reporter
func (h *ReportHandler) ResolveReport(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	reportID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid report ID")
	}

	var req models.ResolveReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	report, err := h.reportRepository.GetReportByID(uint(reportID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Report not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	if report.Status == models.ReportStatusResolved {
		return echo.NewHTTPError(http.StatusConflict, "Report already resolved")
	}

	now := time.Now()
	report.Status = models.ReportStatusResolved
	report.ResolvedBy = &currentUserID
	report.ResolutionNote = req.ResolutionNote
	report.ResolvedAt = &now
	if err := h.reportRepository.UpdateReport(report); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to resolve report")
	}

	// Tell the reporter their report was handled, best-effort
	if h.notificationRepository != nil {
		notif := &models.Notification{
			Type:        "report_resolved",
			ActorID:     currentUserID,
			RecipientID: report.ReporterID,
			TargetID:    strconv.FormatUint(uint64(report.ID), 10),
			TargetType:  "report",
			Message:     "Your report has been reviewed",
		}
		if err := h.notificationRepository.CreateNotification(notif); err == nil {
			if reporter, err := h.userRepository.GetUserByID(report.ReporterID); err == nil {
				h.notifier.NotifyUser(c.Request().Context(), reporter, notif)
			}
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": report})
}
