package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// ComplaintService coordinates the complaint lifecycle.
type ComplaintService struct {
	complaints  repository.ComplaintRepository
	ministries  repository.MinistryRepository
	users       repository.UserRepository
	updates     repository.ComplaintUpdateRepository
	comments    repository.ComplaintCommentRepository
	attachments repository.AttachmentRepository
	dispatcher  events.Dispatcher
}

// ComplaintDependencies bundles repositories for the complaint service.
type ComplaintDependencies struct {
	ComplaintRepo  repository.ComplaintRepository
	MinistryRepo   repository.MinistryRepository
	UserRepo       repository.UserRepository
	UpdateRepo     repository.ComplaintUpdateRepository
	CommentRepo    repository.ComplaintCommentRepository
	AttachmentRepo repository.AttachmentRepository
	Dispatcher     events.Dispatcher
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	return &ComplaintService{
		complaints:  deps.ComplaintRepo,
		ministries:  deps.MinistryRepo,
		users:       deps.UserRepo,
		updates:     deps.UpdateRepo,
		comments:    deps.CommentRepo,
		attachments: deps.AttachmentRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// AttachmentInput describes an already-uploaded file reference.
type AttachmentInput struct {
	FileName string
	FileURL  string
	FileType string
	FileSize int64
	MimeType string
}

// ComplaintCreateInput describes complaint creation payload.
type ComplaintCreateInput struct {
	MinistryID  string
	Title       string
	Description string
	Location    string
	Latitude    *float64
	Longitude   *float64
	Priority    domain.ComplaintPriority
	Attachments []AttachmentInput
}

// ComplaintListFilter describes listing filters.
type ComplaintListFilter struct {
	MinistryID *string
	UserID     *string
	Status     *domain.ComplaintStatus
	Priority   *domain.ComplaintPriority
	SearchTerm *string
	Page       int
	Limit      int
}

// ComplaintUpdateInput describes mutation payload.
type ComplaintUpdateInput struct {
	Status       *domain.ComplaintStatus
	Message      string
	AssignedToID *string
}

// Pagination is the listing envelope returned alongside each page.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPagination computes the envelope for a page of total rows.
func NewPagination(page, limit int, total int64) Pagination {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// ComplaintDetail bundles a complaint with its nested records.
type ComplaintDetail struct {
	Complaint   domain.Complaint
	Ministry    *domain.Ministry
	Reporter    *domain.User
	Updates     []domain.ComplaintUpdate
	Comments    []domain.ComplaintComment
	Attachments []domain.ComplaintAttachment
}

const complaintNumberAttempts = 5

// CreateComplaint files a new complaint for a citizen. The complaint, its
// attachments and the initial audit row are persisted in one transaction;
// number collisions are retried with a fresh suffix.
func (s *ComplaintService) CreateComplaint(ctx context.Context, userID string, input ComplaintCreateInput) (*domain.Complaint, error) {
	ministry, err := s.ministries.GetByID(ctx, input.MinistryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ministry", map[string]any{"ministry_id": input.MinistryID})
		}
		return nil, apperrors.MapError(err)
	}
	if !ministry.IsActive {
		return nil, apperrors.NewConflict("ministry inactive", map[string]any{"ministry_id": ministry.ID})
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !domain.ValidPriority(priority) {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": priority})
	}

	complaint := &domain.Complaint{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Location:    strings.TrimSpace(input.Location),
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Priority:    priority,
		Status:      domain.StatusSubmitted,
		UserID:      userID,
		MinistryID:  ministry.ID,
	}

	attachments := make([]domain.ComplaintAttachment, 0, len(input.Attachments))
	for _, att := range input.Attachments {
		attachments = append(attachments, domain.ComplaintAttachment{
			FileName: att.FileName,
			FileURL:  att.FileURL,
			FileType: att.FileType,
			FileSize: att.FileSize,
			MimeType: att.MimeType,
		})
	}

	var createErr error
	for attempt := 0; attempt < complaintNumberAttempts; attempt++ {
		complaint.ComplaintNumber = generateComplaintNumber(time.Now())
		initial := &domain.ComplaintUpdate{
			Status:      domain.StatusSubmitted,
			Message:     domain.InitialUpdateMessage,
			UpdatedByID: userID,
		}
		createErr = s.complaints.CreateWithAttachments(ctx, complaint, attachments, initial)
		if createErr == nil {
			break
		}
		if !repository.IsUniqueViolation(createErr) {
			return nil, apperrors.MapError(createErr)
		}
	}
	if createErr != nil {
		return nil, apperrors.NewConflict("could not allocate complaint number", nil)
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintSubmitted,
		ComplaintID: complaint.ID,
		ActorUserID: userID,
		Payload: events.ComplaintSubmittedPayload{
			ComplaintNumber: complaint.ComplaintNumber,
			MinistryID:      complaint.MinistryID,
			Priority:        complaint.Priority,
			Title:           complaint.Title,
		},
	})
	return complaint, nil
}

// ListComplaints returns a page of complaints, each joined with reporter,
// ministry, latest audit entry and activity counts, plus the pagination
// envelope.
func (s *ComplaintService) ListComplaints(ctx context.Context, filter ComplaintListFilter) ([]repository.ComplaintListItem, Pagination, error) {
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}

	repoFilter := repository.ComplaintFilter{
		MinistryID: filter.MinistryID,
		UserID:     filter.UserID,
		SearchTerm: filter.SearchTerm,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}
	// Unknown enum values are dropped rather than rejected.
	if filter.Status != nil && domain.ValidStatus(*filter.Status) {
		repoFilter.Statuses = []domain.ComplaintStatus{*filter.Status}
	}
	if filter.Priority != nil && domain.ValidPriority(*filter.Priority) {
		repoFilter.Priorities = []domain.ComplaintPriority{*filter.Priority}
	}

	items, err := s.complaints.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, Pagination{}, apperrors.MapError(err)
	}
	total, err := s.complaints.CountWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, Pagination{}, apperrors.MapError(err)
	}
	return items, NewPagination(page, limit, total), nil
}

// GetComplaintDetail loads a complaint with nested ministry, reporter, audit
// trail, comments and attachments. Internal comments are stripped unless the
// viewer is staff of the owning ministry or an admin.
func (s *ComplaintService) GetComplaintDetail(ctx context.Context, viewer *domain.User, complaintID string) (*ComplaintDetail, error) {
	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"complaint_id": complaintID})
		}
		return nil, apperrors.MapError(err)
	}

	includeInternal := viewer != nil &&
		(viewer.Role.IsPrivileged() || auth.AllowComplaint(viewer, auth.ActionViewInternal, complaint))

	detail := &ComplaintDetail{Complaint: *complaint}

	ministry, err := s.ministries.GetByID(ctx, complaint.MinistryID)
	switch {
	case err == nil:
		detail.Ministry = ministry
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, apperrors.MapError(err)
	}

	reporter, err := s.users.GetByID(ctx, complaint.UserID)
	switch {
	case err == nil:
		detail.Reporter = reporter
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, apperrors.MapError(err)
	}

	updates, err := s.updates.ListByComplaint(ctx, complaint.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	detail.Updates = updates

	comments, err := s.comments.ListByComplaint(ctx, complaint.ID, includeInternal)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	detail.Comments = comments

	attachments, err := s.attachments.ListByComplaint(ctx, complaint.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	detail.Attachments = attachments

	return detail, nil
}

// UpdateComplaint applies status and assignment changes. Status moves must
// follow the transition table; every status change appends an audit row.
func (s *ComplaintService) UpdateComplaint(ctx context.Context, actor *domain.User, complaintID string, input ComplaintUpdateInput) (*domain.Complaint, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"complaint_id": complaintID})
		}
		return nil, apperrors.MapError(err)
	}
	if !auth.AllowComplaint(actor, auth.ActionUpdateComplaint, complaint) {
		return nil, apperrors.NewForbidden("not allowed to update this complaint")
	}

	var oldStatus domain.ComplaintStatus
	statusChanged := false
	if input.Status != nil && *input.Status != complaint.Status {
		newStatus := *input.Status
		if !domain.ValidStatus(newStatus) {
			return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": newStatus})
		}
		if !domain.CanTransition(complaint.Status, newStatus) {
			return nil, apperrors.NewConflict("illegal status transition", map[string]any{
				"from": complaint.Status,
				"to":   newStatus,
			})
		}
		oldStatus = complaint.Status
		complaint.Status = newStatus
		statusChanged = true

		if newStatus == domain.StatusResolved {
			now := time.Now()
			complaint.ResolvedAt = &now
		} else if complaint.ResolvedAt != nil && newStatus != domain.StatusClosed {
			complaint.ResolvedAt = nil
		}
	}

	assignmentChanged := false
	if input.AssignedToID != nil {
		if !actor.Role.IsPrivileged() && !auth.AllowComplaint(actor, auth.ActionAssignComplaint, complaint) {
			return nil, apperrors.NewForbidden("not allowed to assign this complaint")
		}
		if *input.AssignedToID == "" {
			complaint.AssignedToID = nil
		} else {
			assignee, err := s.users.GetByID(ctx, *input.AssignedToID)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return nil, apperrors.NewNotFound("assignee", map[string]any{"user_id": *input.AssignedToID})
				}
				return nil, apperrors.MapError(err)
			}
			if !assignee.IsActive {
				return nil, apperrors.NewConflict("assignee inactive", map[string]any{"user_id": assignee.ID})
			}
			complaint.AssignedToID = &assignee.ID
		}
		assignmentChanged = true
	}

	if err := s.complaints.Update(ctx, complaint); err != nil {
		return nil, apperrors.MapError(err)
	}

	if statusChanged {
		entry := &domain.ComplaintUpdate{
			ComplaintID: complaint.ID,
			Status:      complaint.Status,
			Message:     strings.TrimSpace(input.Message),
			UpdatedByID: actor.ID,
		}
		if err := s.updates.Create(ctx, entry); err != nil {
			return nil, apperrors.MapError(err)
		}
		s.publishEvent(ctx, events.Event{
			Type:        events.EventComplaintStatusChanged,
			ComplaintID: complaint.ID,
			ActorUserID: actor.ID,
			Payload: events.ComplaintStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: complaint.Status,
				Message:   strings.TrimSpace(input.Message),
			},
		})
	}
	if assignmentChanged {
		s.publishEvent(ctx, events.Event{
			Type:        events.EventComplaintAssigned,
			ComplaintID: complaint.ID,
			ActorUserID: actor.ID,
			Payload: events.ComplaintAssignedPayload{
				AssignedToID: complaint.AssignedToID,
				MinistryID:   complaint.MinistryID,
			},
		})
	}

	return complaint, nil
}

// DeleteComplaint hard-deletes a complaint; attachments, updates and comments
// cascade at the schema level.
func (s *ComplaintService) DeleteComplaint(ctx context.Context, actor *domain.User, complaintID string) error {
	if actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("complaint", map[string]any{"complaint_id": complaintID})
		}
		return apperrors.MapError(err)
	}
	if !auth.AllowComplaint(actor, auth.ActionDeleteComplaint, complaint) {
		return apperrors.NewForbidden("not allowed to delete this complaint")
	}
	if err := s.complaints.Delete(ctx, complaint.ID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// AddComment appends a comment. Internal comments require ministry staff or
// admin rights.
func (s *ComplaintService) AddComment(ctx context.Context, actor *domain.User, complaintID, content string, isInternal bool) (*domain.ComplaintComment, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.NewValidationError("content required", nil)
	}
	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"complaint_id": complaintID})
		}
		return nil, apperrors.MapError(err)
	}
	if isInternal && !actor.Role.IsPrivileged() && !auth.AllowComplaint(actor, auth.ActionViewInternal, complaint) {
		return nil, apperrors.NewForbidden("internal comments are staff only")
	}

	comment := &domain.ComplaintComment{
		ComplaintID: complaint.ID,
		AuthorID:    actor.ID,
		Content:     strings.TrimSpace(content),
		IsInternal:  isInternal,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintCommentAdded,
		ComplaintID: complaint.ID,
		ActorUserID: actor.ID,
		Payload: events.ComplaintCommentAddedPayload{
			CommentID:  comment.ID,
			AuthorID:   comment.AuthorID,
			IsInternal: comment.IsInternal,
			Preview:    stringPreview(comment.Content, 120),
		},
	})
	return comment, nil
}

const complaintNumberCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generateComplaintNumber builds JH-<YYYYMMDD>-<4 base36 chars>. Uniqueness
// is enforced by the schema; callers retry on collision.
func generateComplaintNumber(now time.Time) string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// uuid fallback keeps the charset guarantee
		id := strings.ToUpper(uuid.NewString())
		copy(buf, id[:4])
	}
	suffix := make([]byte, 4)
	for i, b := range buf {
		suffix[i] = complaintNumberCharset[int(b)%len(complaintNumberCharset)]
	}
	return fmt.Sprintf("JH-%s-%s", now.Format("20060102"), string(suffix))
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

// stringPreview truncates on rune boundaries so multi-byte text survives.
func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	runes := []rune(body)
	if len(runes) <= max {
		return body
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
