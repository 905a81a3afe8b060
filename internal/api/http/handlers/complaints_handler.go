package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// ComplaintsHandler manages the public and citizen complaint endpoints.
type ComplaintsHandler struct {
	service *service.ComplaintService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaintService *service.ComplaintService) *ComplaintsHandler {
	return &ComplaintsHandler{service: complaintService}
}

// List GET /api/complaints.
func (h *ComplaintsHandler) List(c *fiber.Ctx) error {
	filter := parseComplaintQuery(c)
	listed, pagination, err := h.service.ListComplaints(c.Context(), filter)
	if err != nil {
		return err
	}

	items := make([]dto.ComplaintListItem, 0, len(listed))
	for i := range listed {
		items = append(items, complaintListItem(&listed[i]))
	}
	return c.JSON(dto.ComplaintListResponse{
		Complaints: items,
		Pagination: dto.PaginationResponse{
			Page:  pagination.Page,
			Limit: pagination.Limit,
			Total: pagination.Total,
			Pages: pagination.Pages,
		},
	})
}

// Create POST /api/complaints.
func (h *ComplaintsHandler) Create(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" || req.Description == "" || req.MinistryID == "" {
		return apperrors.NewValidationError("title, description, ministryId required", nil)
	}

	attachments := make([]service.AttachmentInput, 0, len(req.Attachments))
	for _, att := range req.Attachments {
		attachments = append(attachments, service.AttachmentInput{
			FileName: att.FileName,
			FileURL:  att.FileURL,
			FileType: att.FileType,
			FileSize: att.FileSize,
			MimeType: att.MimeType,
		})
	}

	complaint, err := h.service.CreateComplaint(c.Context(), user.ID, service.ComplaintCreateInput{
		MinistryID:  req.MinistryID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Priority:    req.Priority,
		Attachments: attachments,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": complaintSummary(complaint)})
}

// Get GET /api/complaints/:id.
func (h *ComplaintsHandler) Get(c *fiber.Ctx) error {
	var viewer *domain.User
	if user, ok := auth.UserFromContext(c); ok {
		viewer = user
	}
	detail, err := h.service.GetComplaintDetail(c.Context(), viewer, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": complaintDetail(detail)})
}

// Update PUT /api/complaints/:id.
func (h *ComplaintsHandler) Update(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	complaint, err := h.service.UpdateComplaint(c.Context(), user, c.Params("id"), service.ComplaintUpdateInput{
		Status:       req.Status,
		Message:      req.Message,
		AssignedToID: req.AssignedToID,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": complaintSummary(complaint)})
}

// Delete DELETE /api/complaints/:id.
func (h *ComplaintsHandler) Delete(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.DeleteComplaint(c.Context(), user, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "complaint deleted"})
}

// AddComment POST /api/complaints/:id/comments.
func (h *ComplaintsHandler) AddComment(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	comment, err := h.service.AddComment(c.Context(), user, c.Params("id"), req.Content, req.IsInternal)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": commentResponse(comment)})
}

func parseComplaintQuery(c *fiber.Ctx) service.ComplaintListFilter {
	filter := service.ComplaintListFilter{
		Page:  parseInt(c.Query("page"), 1),
		Limit: parseInt(c.Query("limit"), 10),
	}
	if v := strings.TrimSpace(c.Query("ministryId")); v != "" {
		filter.MinistryID = &v
	}
	if v := strings.TrimSpace(c.Query("userId")); v != "" {
		filter.UserID = &v
	}
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		status := domain.ComplaintStatus(v)
		filter.Status = &status
	}
	if v := strings.TrimSpace(c.Query("priority")); v != "" {
		priority := domain.ComplaintPriority(v)
		filter.Priority = &priority
	}
	if v := strings.TrimSpace(c.Query("search")); v != "" {
		filter.SearchTerm = &v
	}
	return filter
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func complaintSummary(complaint *domain.Complaint) dto.ComplaintSummary {
	return dto.ComplaintSummary{
		ID:              complaint.ID,
		ComplaintNumber: complaint.ComplaintNumber,
		Title:           complaint.Title,
		Description:     complaint.Description,
		Location:        complaint.Location,
		Latitude:        complaint.Latitude,
		Longitude:       complaint.Longitude,
		Priority:        complaint.Priority,
		Status:          complaint.Status,
		UserID:          complaint.UserID,
		MinistryID:      complaint.MinistryID,
		AssignedToID:    complaint.AssignedToID,
		ResolvedAt:      complaint.ResolvedAt,
		CreatedAt:       complaint.CreatedAt,
		UpdatedAt:       complaint.UpdatedAt,
	}
}

func complaintListItem(item *repository.ComplaintListItem) dto.ComplaintListItem {
	out := dto.ComplaintListItem{
		ComplaintSummary: complaintSummary(&item.Complaint),
		Reporter: dto.ReporterRef{
			ID:       item.Reporter.ID,
			Username: item.Reporter.Username,
			Name:     item.Reporter.Name,
			PhotoURL: item.Reporter.PhotoURL,
		},
		Ministry: dto.MinistryRef{
			ID:       item.Ministry.ID,
			Name:     item.Ministry.Name,
			Icon:     item.Ministry.Icon,
			Color:    item.Ministry.Color,
			IsActive: item.Ministry.IsActive,
		},
		UpdateCount:  item.UpdateCount,
		CommentCount: item.CommentCount,
	}
	if item.LatestUpdate != nil {
		out.LatestUpdate = &dto.ComplaintUpdateResponse{
			ID:          item.LatestUpdate.ID,
			Status:      item.LatestUpdate.Status,
			Message:     item.LatestUpdate.Message,
			UpdatedByID: item.LatestUpdate.UpdatedByID,
			CreatedAt:   item.LatestUpdate.CreatedAt,
		}
	}
	return out
}

func complaintDetail(detail *service.ComplaintDetail) dto.ComplaintDetailResponse {
	resp := dto.ComplaintDetailResponse{
		ComplaintSummary: complaintSummary(&detail.Complaint),
		Updates:          make([]dto.ComplaintUpdateResponse, 0, len(detail.Updates)),
		Comments:         make([]dto.ComplaintCommentResponse, 0, len(detail.Comments)),
		Attachments:      make([]dto.AttachmentResponse, 0, len(detail.Attachments)),
	}
	if detail.Ministry != nil {
		m := ministryResponse(detail.Ministry)
		resp.Ministry = &m
	}
	if detail.Reporter != nil {
		u := userResponse(detail.Reporter)
		resp.Reporter = &u
	}
	for _, update := range detail.Updates {
		resp.Updates = append(resp.Updates, dto.ComplaintUpdateResponse{
			ID:          update.ID,
			Status:      update.Status,
			Message:     update.Message,
			UpdatedByID: update.UpdatedByID,
			CreatedAt:   update.CreatedAt,
		})
	}
	for i := range detail.Comments {
		resp.Comments = append(resp.Comments, commentResponse(&detail.Comments[i]))
	}
	for _, att := range detail.Attachments {
		resp.Attachments = append(resp.Attachments, dto.AttachmentResponse{
			ID:       att.ID,
			FileName: att.FileName,
			FileURL:  att.FileURL,
			FileType: att.FileType,
			FileSize: att.FileSize,
			MimeType: att.MimeType,
		})
	}
	return resp
}

func commentResponse(comment *domain.ComplaintComment) dto.ComplaintCommentResponse {
	return dto.ComplaintCommentResponse{
		ID:         comment.ID,
		AuthorID:   comment.AuthorID,
		Content:    comment.Content,
		IsInternal: comment.IsInternal,
		CreatedAt:  comment.CreatedAt,
	}
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Name:        user.Name,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Role:        string(user.Role),
		IsPremium:   user.IsPremium,
		PhotoURL:    user.PhotoURL,
	}
}
