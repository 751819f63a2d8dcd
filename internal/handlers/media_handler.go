package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/campuslink-app/backend/internal/storage"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const maxUploadSize = 10 << 20 // 10 MiB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// MediaHandler handles image uploads to object storage
type MediaHandler struct {
	uploader storage.Uploader
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(uploader storage.Uploader) *MediaHandler {
	return &MediaHandler{uploader: uploader}
}

// RegisterMediaRoutes registers media upload routes
func (h *MediaHandler) RegisterMediaRoutes(g *echo.Group) {
	g.POST("/media/upload", h.UploadImage)
}

// UploadImage accepts a multipart image and stores it under a generated key
func (h *MediaHandler) UploadImage(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	if h.uploader == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Media storage is not configured")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing file field")
	}
	if file.Size > maxUploadSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "File exceeds 10MB limit")
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, "Only JPEG, PNG, GIF and WebP images are allowed")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	key := fmt.Sprintf("uploads/%d/%s%s", currentUserID, uuid.NewString(), ext)

	url, err := h.uploader.UploadFile(file, key)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "Failed to upload file")
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"url": url, "key": key}})
}
