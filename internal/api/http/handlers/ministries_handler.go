package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// MinistriesHandler exposes public and admin ministry endpoints.
type MinistriesHandler struct {
	service *service.MinistryService
}

// NewMinistriesHandler constructs handler.
func NewMinistriesHandler(ministryService *service.MinistryService) *MinistriesHandler {
	return &MinistriesHandler{service: ministryService}
}

// ListActive GET /api/ministries.
func (h *MinistriesHandler) ListActive(c *fiber.Ctx) error {
	ministries, err := h.service.ListActive(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ministryResponses(ministries)})
}

// ListAll GET /api/admin/ministries.
func (h *MinistriesHandler) ListAll(c *fiber.Ctx) error {
	ministries, err := h.service.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ministryResponses(ministries)})
}

// Create POST /api/admin/ministries.
func (h *MinistriesHandler) Create(c *fiber.Ctx) error {
	var req dto.MinistryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ministry, err := h.service.Create(c.Context(), service.MinistryInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ministryResponse(ministry)})
}

// Update PUT /api/admin/ministries/:id.
func (h *MinistriesHandler) Update(c *fiber.Ctx) error {
	var req dto.MinistryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ministry, err := h.service.Update(c.Context(), c.Params("id"), service.MinistryInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ministryResponse(ministry)})
}

// Delete DELETE /api/admin/ministries/:id.
func (h *MinistriesHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "ministry deleted"})
}

func ministryResponse(ministry *domain.Ministry) dto.MinistryResponse {
	return dto.MinistryResponse{
		ID:          ministry.ID,
		Name:        ministry.Name,
		Description: ministry.Description,
		Icon:        ministry.Icon,
		Color:       ministry.Color,
		IsActive:    ministry.IsActive,
		CreatedAt:   ministry.CreatedAt,
		UpdatedAt:   ministry.UpdatedAt,
	}
}

func ministryResponses(ministries []domain.Ministry) []dto.MinistryResponse {
	items := make([]dto.MinistryResponse, 0, len(ministries))
	for i := range ministries {
		items = append(items, ministryResponse(&ministries[i]))
	}
	return items
}
