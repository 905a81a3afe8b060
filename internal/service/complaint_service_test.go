package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

type fakeComplaintRepo struct {
	complaints map[string]*domain.Complaint
	updates    []domain.ComplaintUpdate
	// listItems, when set, is returned verbatim by ListWithFilter.
	listItems []repository.ComplaintListItem
	// createFailures makes the first N CreateWithAttachments calls fail with
	// a unique violation, simulating number collisions.
	createFailures int
	createCalls    int
}

func newFakeComplaintRepo() *fakeComplaintRepo {
	return &fakeComplaintRepo{complaints: make(map[string]*domain.Complaint)}
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "complaints_complaint_number_key"}
}

func (f *fakeComplaintRepo) CreateWithAttachments(_ context.Context, complaint *domain.Complaint, _ []domain.ComplaintAttachment, initial *domain.ComplaintUpdate) error {
	f.createCalls++
	if f.createCalls <= f.createFailures {
		return uniqueViolation()
	}
	if complaint.ID == "" {
		complaint.ID = "c-" + complaint.ComplaintNumber
	}
	complaint.CreatedAt = time.Now()
	f.complaints[complaint.ID] = complaint
	if initial != nil {
		initial.ComplaintID = complaint.ID
		f.updates = append(f.updates, *initial)
	}
	return nil
}

func (f *fakeComplaintRepo) Update(_ context.Context, complaint *domain.Complaint) error {
	f.complaints[complaint.ID] = complaint
	return nil
}

func (f *fakeComplaintRepo) Delete(_ context.Context, id string) error {
	delete(f.complaints, id)
	return nil
}

func (f *fakeComplaintRepo) GetByID(_ context.Context, id string) (*domain.Complaint, error) {
	c, ok := f.complaints[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (f *fakeComplaintRepo) GetByNumber(_ context.Context, number string) (*domain.Complaint, error) {
	for _, c := range f.complaints {
		if c.ComplaintNumber == number {
			cp := *c
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeComplaintRepo) ListWithFilter(_ context.Context, _ repository.ComplaintFilter) ([]repository.ComplaintListItem, error) {
	if f.listItems != nil {
		return f.listItems, nil
	}
	out := make([]repository.ComplaintListItem, 0, len(f.complaints))
	for _, c := range f.complaints {
		out = append(out, repository.ComplaintListItem{Complaint: *c})
	}
	return out, nil
}

func (f *fakeComplaintRepo) CountWithFilter(_ context.Context, _ repository.ComplaintFilter) (int64, error) {
	return int64(len(f.complaints)), nil
}

type fakeMinistryRepo struct {
	ministries map[string]*domain.Ministry
	// getErr, when set, is returned by GetByID to simulate store failures.
	getErr error
}

func newFakeMinistryRepo(ministries ...*domain.Ministry) *fakeMinistryRepo {
	repo := &fakeMinistryRepo{ministries: make(map[string]*domain.Ministry)}
	for _, m := range ministries {
		repo.ministries[m.ID] = m
	}
	return repo
}

func (f *fakeMinistryRepo) Create(_ context.Context, m *domain.Ministry) error {
	f.ministries[m.ID] = m
	return nil
}

func (f *fakeMinistryRepo) Update(_ context.Context, m *domain.Ministry) error {
	f.ministries[m.ID] = m
	return nil
}

func (f *fakeMinistryRepo) Delete(_ context.Context, id string) error {
	delete(f.ministries, id)
	return nil
}

func (f *fakeMinistryRepo) GetByID(_ context.Context, id string) (*domain.Ministry, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	m, ok := f.ministries[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return m, nil
}

func (f *fakeMinistryRepo) List(_ context.Context, activeOnly bool) ([]domain.Ministry, error) {
	out := make([]domain.Ministry, 0, len(f.ministries))
	for _, m := range f.ministries {
		if activeOnly && !m.IsActive {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *domain.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeUpdateRepo struct {
	updates []domain.ComplaintUpdate
}

func (f *fakeUpdateRepo) Create(_ context.Context, update *domain.ComplaintUpdate) error {
	f.updates = append(f.updates, *update)
	return nil
}

func (f *fakeUpdateRepo) ListByComplaint(_ context.Context, complaintID string) ([]domain.ComplaintUpdate, error) {
	var out []domain.ComplaintUpdate
	for _, u := range f.updates {
		if u.ComplaintID == complaintID {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeCommentRepo struct {
	comments []domain.ComplaintComment
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *domain.ComplaintComment) error {
	comment.ID = "cm-1"
	f.comments = append(f.comments, *comment)
	return nil
}

func (f *fakeCommentRepo) ListByComplaint(_ context.Context, complaintID string, includeInternal bool) ([]domain.ComplaintComment, error) {
	var out []domain.ComplaintComment
	for _, c := range f.comments {
		if c.ComplaintID != complaintID {
			continue
		}
		if c.IsInternal && !includeInternal {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

type fakeAttachmentRepo struct{}

func (f *fakeAttachmentRepo) ListByComplaint(_ context.Context, _ string) ([]domain.ComplaintAttachment, error) {
	return nil, nil
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(_ events.EventType, _ events.EventHandler) {}

type serviceFixture struct {
	svc        *ComplaintService
	complaints *fakeComplaintRepo
	ministries *fakeMinistryRepo
	users      *fakeUserRepo
	updates    *fakeUpdateRepo
	comments   *fakeCommentRepo
	dispatcher *recordingDispatcher
}

func newServiceFixture(ministries *fakeMinistryRepo, users *fakeUserRepo) *serviceFixture {
	f := &serviceFixture{
		complaints: newFakeComplaintRepo(),
		ministries: ministries,
		users:      users,
		updates:    &fakeUpdateRepo{},
		comments:   &fakeCommentRepo{},
		dispatcher: &recordingDispatcher{},
	}
	f.svc = NewComplaintService(ComplaintDependencies{
		ComplaintRepo:  f.complaints,
		MinistryRepo:   f.ministries,
		UserRepo:       f.users,
		UpdateRepo:     f.updates,
		CommentRepo:    f.comments,
		AttachmentRepo: &fakeAttachmentRepo{},
		Dispatcher:     f.dispatcher,
	})
	return f
}

var complaintNumberPattern = regexp.MustCompile(`^JH-\d{8}-[A-Z0-9]{4}$`)

func TestCreateComplaint(t *testing.T) {
	ministry := &domain.Ministry{ID: "m1", Name: "Public Works", IsActive: true}
	fixture := newServiceFixture(newFakeMinistryRepo(ministry), newFakeUserRepo())

	complaint, err := fixture.svc.CreateComplaint(context.Background(), "u1", ComplaintCreateInput{
		MinistryID:  "m1",
		Title:       "  Broken streetlight  ",
		Description: "The light on 5th avenue has been out for a week.",
		Location:    "5th Avenue",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusSubmitted, complaint.Status)
	assert.Equal(t, domain.PriorityMedium, complaint.Priority, "priority defaults to MEDIUM")
	assert.Equal(t, "Broken streetlight", complaint.Title)
	assert.Regexp(t, complaintNumberPattern, complaint.ComplaintNumber)

	require.Len(t, fixture.complaints.updates, 1, "creation writes the initial audit row")
	initial := fixture.complaints.updates[0]
	assert.Equal(t, domain.StatusSubmitted, initial.Status)
	assert.Equal(t, domain.InitialUpdateMessage, initial.Message)
	assert.Equal(t, "u1", initial.UpdatedByID)

	require.Len(t, fixture.dispatcher.published, 1)
	assert.Equal(t, events.EventComplaintSubmitted, fixture.dispatcher.published[0].Type)
}

func TestCreateComplaintUnknownMinistry(t *testing.T) {
	fixture := newServiceFixture(newFakeMinistryRepo(), newFakeUserRepo())

	_, err := fixture.svc.CreateComplaint(context.Background(), "u1", ComplaintCreateInput{
		MinistryID: "missing",
		Title:      "x",
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}

func TestCreateComplaintInactiveMinistry(t *testing.T) {
	ministry := &domain.Ministry{ID: "m1", Name: "Defunct", IsActive: false}
	fixture := newServiceFixture(newFakeMinistryRepo(ministry), newFakeUserRepo())

	_, err := fixture.svc.CreateComplaint(context.Background(), "u1", ComplaintCreateInput{
		MinistryID: "m1",
		Title:      "x",
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperrors.ToDomainError(err).HTTPStatus)
}

func TestCreateComplaintInvalidPriority(t *testing.T) {
	ministry := &domain.Ministry{ID: "m1", Name: "Public Works", IsActive: true}
	fixture := newServiceFixture(newFakeMinistryRepo(ministry), newFakeUserRepo())

	_, err := fixture.svc.CreateComplaint(context.Background(), "u1", ComplaintCreateInput{
		MinistryID: "m1",
		Title:      "x",
		Priority:   "CRITICAL",
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
}

func TestCreateComplaintRetriesNumberCollisions(t *testing.T) {
	ministry := &domain.Ministry{ID: "m1", Name: "Public Works", IsActive: true}
	fixture := newServiceFixture(newFakeMinistryRepo(ministry), newFakeUserRepo())
	fixture.complaints.createFailures = 2

	complaint, err := fixture.svc.CreateComplaint(context.Background(), "u1", ComplaintCreateInput{
		MinistryID: "m1",
		Title:      "x",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, fixture.complaints.createCalls)
	assert.Regexp(t, complaintNumberPattern, complaint.ComplaintNumber)
}

func TestCreateComplaintGivesUpAfterRepeatedCollisions(t *testing.T) {
	ministry := &domain.Ministry{ID: "m1", Name: "Public Works", IsActive: true}
	fixture := newServiceFixture(newFakeMinistryRepo(ministry), newFakeUserRepo())
	fixture.complaints.createFailures = complaintNumberAttempts

	_, err := fixture.svc.CreateComplaint(context.Background(), "u1", ComplaintCreateInput{
		MinistryID: "m1",
		Title:      "x",
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperrors.ToDomainError(err).HTTPStatus)
	assert.Equal(t, complaintNumberAttempts, fixture.complaints.createCalls)
}

func TestGenerateComplaintNumberFormat(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 50; i++ {
		number := generateComplaintNumber(now)
		assert.Regexp(t, `^JH-20250314-[A-Z0-9]{4}$`, number)
	}
}

func seedComplaint(fixture *serviceFixture, complaint *domain.Complaint) *domain.Complaint {
	if complaint.ID == "" {
		complaint.ID = "c1"
	}
	fixture.complaints.complaints[complaint.ID] = complaint
	return complaint
}

func TestUpdateComplaintStatusWritesAuditRow(t *testing.T) {
	fixture := newServiceFixture(newFakeMinistryRepo(), newFakeUserRepo())
	seedComplaint(fixture, &domain.Complaint{
		ID: "c1", UserID: "u1", MinistryID: "m1", Status: domain.StatusSubmitted,
	})
	admin := &domain.User{ID: "a1", Role: domain.RoleAdmin, IsActive: true}

	next := domain.StatusUnderReview
	updated, err := fixture.svc.UpdateComplaint(context.Background(), admin, "c1", ComplaintUpdateInput{
		Status:  &next,
		Message: "taking a look",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusUnderReview, updated.Status)

	require.Len(t, fixture.updates.updates, 1)
	entry := fixture.updates.updates[0]
	assert.Equal(t, domain.StatusUnderReview, entry.Status)
	assert.Equal(t, "taking a look", entry.Message)
	assert.Equal(t, "a1", entry.UpdatedByID)

	require.Len(t, fixture.dispatcher.published, 1)
	assert.Equal(t, events.EventComplaintStatusChanged, fixture.dispatcher.published[0].Type)
}

func TestUpdateComplaintRejectsIllegalTransition(t *testing.T) {
	fixture := newServiceFixture(newFakeMinistryRepo(), newFakeUserRepo())
	seedComplaint(fixture, &domain.Complaint{
		ID: "c1", UserID: "u1", MinistryID: "m1", Status: domain.StatusClosed,
	})
	admin := &domain.User{ID: "a1", Role: domain.RoleAdmin, IsActive: true}

	next := domain.StatusInProgress
	_, err := fixture.svc.UpdateComplaint(context.Background(), admin, "c1", ComplaintUpdateInput{Status: &next})
	require.Error(t, err)
	assert.Equal(t, 409, apperrors.ToDomainError(err).HTTPStatus)
	assert.Empty(t, fixture.updates.updates, "no audit row for a rejected transition")
}

func TestUpdateComplaintForbiddenForStranger(t *testing.T) {
	fixture := newServiceFixture(newFakeMinistryRepo(), newFakeUserRepo())
	seedComplaint(fixture, &domain.Complaint{
		ID: "c1", UserID: "u1", MinistryID: "m1", Status: domain.StatusSubmitted,
	})
	stranger := &domain.User{ID: "u2", Role: domain.RoleCitizen, IsActive: true}

	next := domain.StatusUnderReview
	_, err := fixture.svc.UpdateComplaint(context.Background(), stranger, "c1", ComplaintUpdateInput{Status: &next})
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)
}

func TestUpdateComplaintNotFound(t *testing.T) {
	fixture := newServiceFixture(newFakeMinistryRepo(), newFakeUserRepo())
	admin := &domain.User{ID: "a1", Role: domain.RoleAdmin, IsActive: true}

	next := domain.StatusUnderReview
	_, err := fixture.svc.UpdateComplaint(context.Background(), admin, "missing", ComplaintUpdateInput{Status: &next})
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}

func TestUpdateComplaintStampsResolvedAt(t *testing.T) {
	fixture := newServiceFixture(newFakeMinistryRepo(), newFakeUserRepo())
	seedComplaint(fixture, &domain.Complaint{
		ID: "c1", UserID: "u1", MinistryID: "m1", Status: domain.StatusInProgress,
	})
	admin := &domain.User{ID: "a1", Role: domain.RoleAdmin, IsActive: true}

	next := domain.StatusResolved
	updated, err := fixture.svc.UpdateComplaint(context.Background(), admin, "c1", ComplaintUpdateInput{Status: &next})
	require.NoError(t, err)
	require.NotNil(t, updated.ResolvedAt)

	// reopening clears the timestamp
	reopen := domain.StatusInProgress
	updated, err = fixture.svc.UpdateComplaint(context.Background(), admin, "c1", ComplaintUpdateInput{Status: &reopen})
	require.NoError(t, err)
	assert.Nil(t, updated.ResolvedAt)
}

func TestUpdateComplaintAssignsActiveUser(t *testing.T) {
	assignee := &domain.User{ID: "s1", Role: domain.RoleMinistryStaff, IsActive: true}
	fixture := newServiceFixture(newFakeMinistryRepo(), newFakeUserRepo(assignee))
	seedComplaint(fixture, &domain.Complaint{
		ID: "c1", UserID: "u1", MinistryID: "m1", Status: domain.StatusSubmitted,
	})
	admin := &domain.User{ID: "a1", Role: domain.RoleAdmin, IsActive: true}

	assignTo := "s1"
	updated, err := fixture.svc.UpdateComplaint(context.Background(), admin, "c1", ComplaintUpdateInput{AssignedToID: &assignTo})
	require.NoError(t, err)
	require.NotNil(t, updated.AssignedToID)
	assert.Equal(t, "s1", *updated.AssignedToID)

	require.Len(t, fixture.dispatcher.published, 1)
	assert.Equal(t, events.EventComplaintAssigned, fixture.dispatcher.published[0].Type)
}

func TestUpdateComplaintRejectsInactiveAssignee(t *testing.T) {
	assignee := &domain.User{ID: "s1", Role: domain.RoleMinistryStaff, IsActive: false}
	fixture := newServiceFixture(newFakeMinistryRepo(), newFakeUserRepo(assignee))
	seedComplaint(fixture, &domain.Complaint{
		ID: "c1", UserID: "u1", MinistryID: "m1", Status: domain.StatusSubmitted,
	})
	admin := &domain.User{ID: "a1", Role: domain.RoleAdmin, IsActive: true}

	assignTo := "s1"
	_, err := fixture.svc.UpdateComplaint(context.Background(), admin, "c1", ComplaintUpdateInput{AssignedToID: &assignTo})
	require.Error(t, err)
	assert.Equal(t, 409, apperrors.ToDomainError(err).HTTPStatus)
}

func TestDeleteComplaintOnlyReporterOrAdmin(t *testing.T) {
	fixture := newServiceFixture(newFakeMinistryRepo(), newFakeUserRepo())
	seedComplaint(fixture, &domain.Complaint{
		ID: "c1", UserID: "u1", MinistryID: "m1", Status: domain.StatusSubmitted,
	})

	staff := &domain.User{ID: "s1", Role: domain.RoleMinistryStaff, IsActive: true, MinistryID: func() *string { s := "m1"; return &s }()}
	err := fixture.svc.DeleteComplaint(context.Background(), staff, "c1")
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)

	reporter := &domain.User{ID: "u1", Role: domain.RoleCitizen, IsActive: true}
	require.NoError(t, fixture.svc.DeleteComplaint(context.Background(), reporter, "c1"))
	assert.Empty(t, fixture.complaints.complaints)
}

func TestGetComplaintDetailHidesInternalComments(t *testing.T) {
	reporter := &domain.User{ID: "u1", Role: domain.RoleCitizen, IsActive: true}
	fixture := newServiceFixture(newFakeMinistryRepo(), newFakeUserRepo(reporter))
	seedComplaint(fixture, &domain.Complaint{
		ID: "c1", UserID: "u1", MinistryID: "m1", Status: domain.StatusSubmitted,
	})
	fixture.comments.comments = []domain.ComplaintComment{
		{ID: "p1", ComplaintID: "c1", AuthorID: "u1", Content: "any news?", IsInternal: false},
		{ID: "i1", ComplaintID: "c1", AuthorID: "s1", Content: "crew dispatched", IsInternal: true},
	}

	detail, err := fixture.svc.GetComplaintDetail(context.Background(), nil, "c1")
	require.NoError(t, err)
	require.Len(t, detail.Comments, 1, "anonymous viewer sees public comments only")
	assert.Equal(t, "p1", detail.Comments[0].ID)

	admin := &domain.User{ID: "a1", Role: domain.RoleAdmin, IsActive: true}
	detail, err = fixture.svc.GetComplaintDetail(context.Background(), admin, "c1")
	require.NoError(t, err)
	assert.Len(t, detail.Comments, 2)
}

func TestAddCommentInternalRequiresStaff(t *testing.T) {
	fixture := newServiceFixture(newFakeMinistryRepo(), newFakeUserRepo())
	seedComplaint(fixture, &domain.Complaint{
		ID: "c1", UserID: "u1", MinistryID: "m1", Status: domain.StatusSubmitted,
	})

	citizen := &domain.User{ID: "u1", Role: domain.RoleCitizen, IsActive: true}
	_, err := fixture.svc.AddComment(context.Background(), citizen, "c1", "note", true)
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)

	comment, err := fixture.svc.AddComment(context.Background(), citizen, "c1", "  any news?  ", false)
	require.NoError(t, err)
	assert.Equal(t, "any news?", comment.Content)

	assert.Len(t, fixture.dispatcher.published, 1)
}

func TestAddCommentRejectsEmptyContent(t *testing.T) {
	fixture := newServiceFixture(newFakeMinistryRepo(), newFakeUserRepo())
	citizen := &domain.User{ID: "u1", Role: domain.RoleCitizen, IsActive: true}

	_, err := fixture.svc.AddComment(context.Background(), citizen, "c1", "   ", false)
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
}

func TestListComplaintsDropsInvalidEnumFilters(t *testing.T) {
	fixture := newServiceFixture(newFakeMinistryRepo(), newFakeUserRepo())
	seedComplaint(fixture, &domain.Complaint{
		ID: "c1", UserID: "u1", MinistryID: "m1", Status: domain.StatusSubmitted,
	})

	bogusStatus := domain.ComplaintStatus("PENDING")
	bogusPriority := domain.ComplaintPriority("CRITICAL")
	complaints, pagination, err := fixture.svc.ListComplaints(context.Background(), ComplaintListFilter{
		Status:   &bogusStatus,
		Priority: &bogusPriority,
	})
	require.NoError(t, err)
	assert.Len(t, complaints, 1)
	assert.Equal(t, int64(1), pagination.Total)
}

func TestListComplaintsSurfacesJoinedRows(t *testing.T) {
	fixture := newServiceFixture(newFakeMinistryRepo(), newFakeUserRepo())
	latest := &domain.ComplaintUpdate{
		ID:          "up9",
		ComplaintID: "c1",
		Status:      domain.StatusInProgress,
		Message:     "crew on site",
		UpdatedByID: "s1",
		CreatedAt:   time.Now(),
	}
	fixture.complaints.listItems = []repository.ComplaintListItem{
		{
			Complaint:    domain.Complaint{ID: "c1", UserID: "u1", MinistryID: "m1", Status: domain.StatusInProgress},
			Reporter:     domain.User{ID: "u1", Username: "asha", Name: "Asha Kumari"},
			Ministry:     domain.Ministry{ID: "m1", Name: "Water Resources", IsActive: true},
			LatestUpdate: latest,
			UpdateCount:  3,
			CommentCount: 2,
		},
	}

	items, _, err := fixture.svc.ListComplaints(context.Background(), ComplaintListFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "asha", items[0].Reporter.Username)
	assert.Equal(t, "Water Resources", items[0].Ministry.Name)
	require.NotNil(t, items[0].LatestUpdate)
	assert.Equal(t, "crew on site", items[0].LatestUpdate.Message)
	assert.Equal(t, int64(3), items[0].UpdateCount)
	assert.Equal(t, int64(2), items[0].CommentCount)
}

func TestGetComplaintDetailPropagatesLookupFailures(t *testing.T) {
	ministries := newFakeMinistryRepo()
	ministries.getErr = errors.New("connection reset by peer")
	fixture := newServiceFixture(ministries, newFakeUserRepo())
	seedComplaint(fixture, &domain.Complaint{
		ID: "c1", UserID: "u1", MinistryID: "m1", Status: domain.StatusSubmitted,
	})

	_, err := fixture.svc.GetComplaintDetail(context.Background(), nil, "c1")
	require.Error(t, err)
	assert.Equal(t, 500, apperrors.ToDomainError(err).HTTPStatus)
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
		total int64
		pages int
	}{
		{"exact pages", 1, 10, 100, 10},
		{"partial last page", 1, 10, 101, 11},
		{"empty result", 1, 10, 0, 0},
		{"single short page", 2, 25, 7, 1},
		{"defaults applied", 0, 0, 15, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.page, tc.limit, tc.total)
			assert.Equal(t, tc.pages, p.Pages)
			assert.Equal(t, tc.total, p.Total)
		})
	}
}

func TestStringPreview(t *testing.T) {
	assert.Equal(t, "short", stringPreview("  short  ", 120))
	long := stringPreview("abcdefghij", 8)
	assert.Equal(t, "abcde...", long)
	assert.Len(t, long, 8)

	multibyte := stringPreview("παράπονο για τον δρόμο", 8)
	assert.True(t, utf8.ValidString(multibyte), "preview must not split a rune")
	assert.Equal(t, "παράπ...", multibyte)
	assert.Equal(t, 8, utf8.RuneCountInString(multibyte))
}
