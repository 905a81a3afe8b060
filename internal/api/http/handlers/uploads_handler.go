package handlers

import (
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/storage"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// UploadsHandler accepts attachment files and stores them in object storage.
type UploadsHandler struct {
	uploader   storage.Uploader
	storageCfg config.StorageConfig
}

// NewUploadsHandler constructs handler. uploader may be nil when storage is
// not configured.
func NewUploadsHandler(uploader storage.Uploader, storageCfg config.StorageConfig) *UploadsHandler {
	return &UploadsHandler{uploader: uploader, storageCfg: storageCfg}
}

// Upload POST /api/uploads (multipart, field "file").
func (h *UploadsHandler) Upload(c *fiber.Ctx) error {
	if h.uploader == nil {
		return apperrors.NewDomainError("STORAGE_UNAVAILABLE", "attachment storage not configured", http.StatusServiceUnavailable, nil)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("multipart field 'file' required", nil)
	}
	if fileHeader.Size > h.storageCfg.MaxUploadBytes() {
		return apperrors.NewValidationError("file too large", map[string]any{
			"maxBytes": h.storageCfg.MaxUploadBytes(),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.MapError(err)
	}
	defer file.Close() //nolint:errcheck

	data, err := io.ReadAll(file)
	if err != nil {
		return apperrors.MapError(err)
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	uploaded, err := h.uploader.Upload(c.Context(), fileHeader.Filename, mimeType, data)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": uploaded})
}
