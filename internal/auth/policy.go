package auth

import "github.com/spec-kit/complaint-service/internal/domain"

// ComplaintAction enumerates operations the policy decides on.
type ComplaintAction string

const (
	ActionUpdateComplaint ComplaintAction = "update"
	ActionDeleteComplaint ComplaintAction = "delete"
	ActionAssignComplaint ComplaintAction = "assign"
	ActionViewInternal    ComplaintAction = "view_internal"
)

// AllowComplaint is the single authorization decision point for complaint
// mutations. Rules: admins are unrestricted; ministry staff act within their
// ministry; the reporter may update or delete their own complaint; the
// assignee may update. Billing tier (isPremium) is never consulted.
func AllowComplaint(user *domain.User, action ComplaintAction, complaint *domain.Complaint) bool {
	if user == nil || complaint == nil {
		return false
	}
	if user.Role.IsPrivileged() {
		return true
	}

	staffOfMinistry := user.Role == domain.RoleMinistryStaff &&
		user.MinistryID != nil && *user.MinistryID == complaint.MinistryID
	isReporter := complaint.UserID == user.ID
	isAssignee := complaint.AssignedToID != nil && *complaint.AssignedToID == user.ID

	switch action {
	case ActionUpdateComplaint:
		return isReporter || isAssignee || staffOfMinistry
	case ActionDeleteComplaint:
		return isReporter
	case ActionAssignComplaint:
		return staffOfMinistry
	case ActionViewInternal:
		return staffOfMinistry
	}
	return false
}
