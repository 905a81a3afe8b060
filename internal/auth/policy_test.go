package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/complaint-service/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestAllowComplaintAdminsUnrestricted(t *testing.T) {
	complaint := &domain.Complaint{ID: "c1", UserID: "someone-else", MinistryID: "m1"}
	for _, role := range []domain.UserRole{domain.RoleAdmin, domain.RoleSuperAdmin} {
		admin := &domain.User{ID: "a1", Role: role}
		for _, action := range []ComplaintAction{
			ActionUpdateComplaint, ActionDeleteComplaint, ActionAssignComplaint, ActionViewInternal,
		} {
			assert.True(t, AllowComplaint(admin, action, complaint), "role %s action %s", role, action)
		}
	}
}

func TestAllowComplaintReporter(t *testing.T) {
	reporter := &domain.User{ID: "u1", Role: domain.RoleCitizen}
	complaint := &domain.Complaint{ID: "c1", UserID: "u1", MinistryID: "m1"}

	assert.True(t, AllowComplaint(reporter, ActionUpdateComplaint, complaint))
	assert.True(t, AllowComplaint(reporter, ActionDeleteComplaint, complaint))
	assert.False(t, AllowComplaint(reporter, ActionAssignComplaint, complaint))
	assert.False(t, AllowComplaint(reporter, ActionViewInternal, complaint))
}

func TestAllowComplaintStranger(t *testing.T) {
	stranger := &domain.User{ID: "u2", Role: domain.RoleCitizen}
	complaint := &domain.Complaint{ID: "c1", UserID: "u1", MinistryID: "m1"}

	for _, action := range []ComplaintAction{
		ActionUpdateComplaint, ActionDeleteComplaint, ActionAssignComplaint, ActionViewInternal,
	} {
		assert.False(t, AllowComplaint(stranger, action, complaint), "action %s", action)
	}
}

func TestAllowComplaintMinistryStaffScopedToMinistry(t *testing.T) {
	staff := &domain.User{ID: "s1", Role: domain.RoleMinistryStaff, MinistryID: strPtr("m1")}
	inScope := &domain.Complaint{ID: "c1", UserID: "u1", MinistryID: "m1"}
	outOfScope := &domain.Complaint{ID: "c2", UserID: "u1", MinistryID: "m2"}

	assert.True(t, AllowComplaint(staff, ActionUpdateComplaint, inScope))
	assert.True(t, AllowComplaint(staff, ActionAssignComplaint, inScope))
	assert.True(t, AllowComplaint(staff, ActionViewInternal, inScope))
	assert.False(t, AllowComplaint(staff, ActionDeleteComplaint, inScope))

	assert.False(t, AllowComplaint(staff, ActionUpdateComplaint, outOfScope))
	assert.False(t, AllowComplaint(staff, ActionAssignComplaint, outOfScope))
	assert.False(t, AllowComplaint(staff, ActionViewInternal, outOfScope))
}

func TestAllowComplaintAssigneeMayUpdate(t *testing.T) {
	assignee := &domain.User{ID: "s1", Role: domain.RoleMinistryStaff, MinistryID: strPtr("m2")}
	complaint := &domain.Complaint{ID: "c1", UserID: "u1", MinistryID: "m1", AssignedToID: strPtr("s1")}

	assert.True(t, AllowComplaint(assignee, ActionUpdateComplaint, complaint))
	assert.False(t, AllowComplaint(assignee, ActionDeleteComplaint, complaint))
}

func TestAllowComplaintPremiumFlagIgnored(t *testing.T) {
	premium := &domain.User{ID: "u2", Role: domain.RoleCitizen, IsPremium: true}
	complaint := &domain.Complaint{ID: "c1", UserID: "u1", MinistryID: "m1"}

	assert.False(t, AllowComplaint(premium, ActionUpdateComplaint, complaint))
	assert.False(t, AllowComplaint(premium, ActionDeleteComplaint, complaint))
}

func TestAllowComplaintNilInputs(t *testing.T) {
	user := &domain.User{ID: "u1", Role: domain.RoleAdmin}
	complaint := &domain.Complaint{ID: "c1"}

	assert.False(t, AllowComplaint(nil, ActionUpdateComplaint, complaint))
	assert.False(t, AllowComplaint(user, ActionUpdateComplaint, nil))
}
