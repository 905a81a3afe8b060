package domain

import "time"

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	StatusSubmitted   ComplaintStatus = "SUBMITTED"
	StatusUnderReview ComplaintStatus = "UNDER_REVIEW"
	StatusInProgress  ComplaintStatus = "IN_PROGRESS"
	StatusResolved    ComplaintStatus = "RESOLVED"
	StatusRejected    ComplaintStatus = "REJECTED"
	StatusClosed      ComplaintStatus = "CLOSED"
)

// ComplaintPriority enumerates urgency levels.
type ComplaintPriority string

const (
	PriorityLow    ComplaintPriority = "LOW"
	PriorityMedium ComplaintPriority = "MEDIUM"
	PriorityHigh   ComplaintPriority = "HIGH"
	PriorityUrgent ComplaintPriority = "URGENT"
)

// Complaint is the aggregate for citizen-submitted civic issue reports.
type Complaint struct {
	ID              string
	ComplaintNumber string
	Title           string
	Description     string
	Location        string
	Latitude        *float64
	Longitude       *float64
	Priority        ComplaintPriority
	Status          ComplaintStatus
	UserID          string
	MinistryID      string
	AssignedToID    *string
	ResolvedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ValidStatus reports whether s is one of the declared lifecycle states.
func ValidStatus(s ComplaintStatus) bool {
	switch s {
	case StatusSubmitted, StatusUnderReview, StatusInProgress, StatusResolved, StatusRejected, StatusClosed:
		return true
	}
	return false
}

// ValidPriority reports whether p is one of the declared urgency levels.
func ValidPriority(p ComplaintPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// allowedTransitions constrains status changes. CLOSED is terminal; REJECTED
// may be reopened into review (appeal), RESOLVED may be reopened or closed.
var allowedTransitions = map[ComplaintStatus][]ComplaintStatus{
	StatusSubmitted:   {StatusUnderReview, StatusInProgress, StatusRejected},
	StatusUnderReview: {StatusInProgress, StatusResolved, StatusRejected},
	StatusInProgress:  {StatusUnderReview, StatusResolved, StatusRejected},
	StatusResolved:    {StatusClosed, StatusInProgress},
	StatusRejected:    {StatusUnderReview},
	StatusClosed:      {},
}

// CanTransition reports whether a complaint may move from current to next.
func CanTransition(current, next ComplaintStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
