package dto

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// AttachmentRequest describes a pre-uploaded file reference.
type AttachmentRequest struct {
	FileName string `json:"fileName"`
	FileURL  string `json:"fileUrl"`
	FileType string `json:"fileType"`
	FileSize int64  `json:"fileSize"`
	MimeType string `json:"mimeType"`
}

// CreateComplaintRequest payload.
type CreateComplaintRequest struct {
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Location    string                   `json:"location"`
	Latitude    *float64                 `json:"latitude"`
	Longitude   *float64                 `json:"longitude"`
	Priority    domain.ComplaintPriority `json:"priority"`
	MinistryID  string                   `json:"ministryId"`
	Attachments []AttachmentRequest      `json:"attachments"`
}

// UpdateComplaintRequest payload.
type UpdateComplaintRequest struct {
	Status       *domain.ComplaintStatus `json:"status"`
	Message      string                  `json:"message"`
	AssignedToID *string                 `json:"assignedToId"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Content    string `json:"content"`
	IsInternal bool   `json:"isInternal"`
}

// ComplaintSummary response.
type ComplaintSummary struct {
	ID              string                   `json:"id"`
	ComplaintNumber string                   `json:"complaintNumber"`
	Title           string                   `json:"title"`
	Description     string                   `json:"description"`
	Location        string                   `json:"location"`
	Latitude        *float64                 `json:"latitude,omitempty"`
	Longitude       *float64                 `json:"longitude,omitempty"`
	Priority        domain.ComplaintPriority `json:"priority"`
	Status          domain.ComplaintStatus   `json:"status"`
	UserID          string                   `json:"userId"`
	MinistryID      string                   `json:"ministryId"`
	AssignedToID    *string                  `json:"assignedToId,omitempty"`
	ResolvedAt      *time.Time               `json:"resolvedAt,omitempty"`
	CreatedAt       time.Time                `json:"createdAt"`
	UpdatedAt       time.Time                `json:"updatedAt"`
}

// ReporterRef is the compact reporter shape embedded in listing rows.
type ReporterRef struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Name     string  `json:"name"`
	PhotoURL *string `json:"photoUrl,omitempty"`
}

// MinistryRef is the compact ministry shape embedded in listing rows.
type MinistryRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Color    string `json:"color"`
	IsActive bool   `json:"isActive"`
}

// ComplaintListItem is one listing row: the complaint plus its reporter,
// ministry, most recent update and activity counts.
type ComplaintListItem struct {
	ComplaintSummary
	Reporter     ReporterRef              `json:"reporter"`
	Ministry     MinistryRef              `json:"ministry"`
	LatestUpdate *ComplaintUpdateResponse `json:"latestUpdate,omitempty"`
	UpdateCount  int64                    `json:"updateCount"`
	CommentCount int64                    `json:"commentCount"`
}

// PaginationResponse envelope.
type PaginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// ComplaintListResponse wraps a page of complaints.
type ComplaintListResponse struct {
	Complaints []ComplaintListItem `json:"complaints"`
	Pagination PaginationResponse  `json:"pagination"`
}

// ComplaintUpdateResponse is one audit trail entry.
type ComplaintUpdateResponse struct {
	ID          string                 `json:"id"`
	Status      domain.ComplaintStatus `json:"status"`
	Message     string                 `json:"message"`
	UpdatedByID string                 `json:"updatedById"`
	CreatedAt   time.Time              `json:"createdAt"`
}

// ComplaintCommentResponse is one comment.
type ComplaintCommentResponse struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"authorId"`
	Content    string    `json:"content"`
	IsInternal bool      `json:"isInternal"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AttachmentResponse metadata.
type AttachmentResponse struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
	FileURL  string `json:"fileUrl"`
	FileType string `json:"fileType"`
	FileSize int64  `json:"fileSize"`
	MimeType string `json:"mimeType"`
}

// ComplaintDetailResponse provides the full complaint view.
type ComplaintDetailResponse struct {
	ComplaintSummary
	Ministry    *MinistryResponse          `json:"ministry,omitempty"`
	Reporter    *UserResponse              `json:"reporter,omitempty"`
	Updates     []ComplaintUpdateResponse  `json:"updates"`
	Comments    []ComplaintCommentResponse `json:"comments"`
	Attachments []AttachmentResponse       `json:"attachments"`
}
