package handlers

import (
	"net/http"
	"strconv"

	"github.com/campuslink-app/backend/internal/models"
	"github.com/campuslink-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// InstituteHandler handles institute-related HTTP requests
type InstituteHandler struct {
	instituteRepository repositories.InstituteRepository
}

// NewInstituteHandler creates a new InstituteHandler
func NewInstituteHandler(instituteRepo repositories.InstituteRepository) *InstituteHandler {
	return &InstituteHandler{instituteRepository: instituteRepo}
}

// RegisterInstituteRoutes registers institute routes
func (h *InstituteHandler) RegisterInstituteRoutes(g *echo.Group) {
	g.GET("/institutes", h.ListInstitutes)
	g.GET("/institutes/:id", h.GetInstitute)
}

// RegisterAdminInstituteRoutes registers admin-only institute routes
func (h *InstituteHandler) RegisterAdminInstituteRoutes(g *echo.Group) {
	g.POST("/institutes", h.CreateInstitute)
}

// ListInstitutes returns all registered institutes
func (h *InstituteHandler) ListInstitutes(c echo.Context) error {
	institutes, err := h.instituteRepository.ListInstitutes()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list institutes")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"institutes": institutes}})
}

// GetInstitute returns one institute by id
func (h *InstituteHandler) GetInstitute(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid institute ID")
	}

	institute, err := h.instituteRepository.GetInstituteByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Institute not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
	}
	return c.JSON(http.StatusOK, institute)
}

// CreateInstitute registers a new institute (platform admin only)
func (h *InstituteHandler) CreateInstitute(c echo.Context) error {
	var req models.CreateInstituteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.instituteRepository.GetInstituteByDomain(req.Domain); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Institute with this domain already exists")
	}

	institute := &models.Institute{
		Name:   req.Name,
		Domain: req.Domain,
		City:   req.City,
	}
	if err := h.instituteRepository.CreateInstitute(institute); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create institute")
	}
	return c.JSON(http.StatusCreated, institute)
}
