package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/service"
)

// AdminHandler serves the analytics and dashboard endpoints.
type AdminHandler struct {
	analytics *service.AnalyticsService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(analyticsService *service.AnalyticsService) *AdminHandler {
	return &AdminHandler{analytics: analyticsService}
}

// Analytics GET /api/admin/analytics?timeRange=<days>.
func (h *AdminHandler) Analytics(c *fiber.Ctx) error {
	timeRange := parseInt(c.Query("timeRange"), 30)
	report, err := h.analytics.BuildReport(c.Context(), timeRange)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": report})
}

// DashboardComplaints GET /api/admin/dashboard/complaints.
func (h *AdminHandler) DashboardComplaints(c *fiber.Ctx) error {
	summary, err := h.analytics.ComplaintsDashboard(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}

// DashboardMinistries GET /api/admin/dashboard/ministries.
func (h *AdminHandler) DashboardMinistries(c *fiber.Ctx) error {
	summary, err := h.analytics.MinistriesDashboard(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}
