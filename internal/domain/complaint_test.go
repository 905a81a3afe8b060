package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []ComplaintStatus{
		StatusSubmitted, StatusUnderReview, StatusInProgress,
		StatusResolved, StatusRejected, StatusClosed,
	} {
		assert.True(t, ValidStatus(s), "expected %q to be valid", s)
	}

	assert.False(t, ValidStatus("PENDING"))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("submitted"))
}

func TestValidPriority(t *testing.T) {
	for _, p := range []ComplaintPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent} {
		assert.True(t, ValidPriority(p), "expected %q to be valid", p)
	}

	assert.False(t, ValidPriority("CRITICAL"))
	assert.False(t, ValidPriority(""))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    ComplaintStatus
		to      ComplaintStatus
		allowed bool
	}{
		{"submitted to review", StatusSubmitted, StatusUnderReview, true},
		{"submitted straight to in progress", StatusSubmitted, StatusInProgress, true},
		{"submitted rejected", StatusSubmitted, StatusRejected, true},
		{"submitted cannot resolve directly", StatusSubmitted, StatusResolved, false},
		{"submitted cannot close directly", StatusSubmitted, StatusClosed, false},
		{"review to in progress", StatusUnderReview, StatusInProgress, true},
		{"review to resolved", StatusUnderReview, StatusResolved, true},
		{"in progress back to review", StatusInProgress, StatusUnderReview, true},
		{"in progress to resolved", StatusInProgress, StatusResolved, true},
		{"resolved to closed", StatusResolved, StatusClosed, true},
		{"resolved reopened", StatusResolved, StatusInProgress, true},
		{"resolved cannot be rejected", StatusResolved, StatusRejected, false},
		{"rejected appealed", StatusRejected, StatusUnderReview, true},
		{"rejected cannot resolve", StatusRejected, StatusResolved, false},
		{"closed is terminal", StatusClosed, StatusInProgress, false},
		{"closed cannot reopen to review", StatusClosed, StatusUnderReview, false},
		{"self transition not listed", StatusInProgress, StatusInProgress, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to))
		})
	}
}

func TestClosedHasNoOutgoingTransitions(t *testing.T) {
	for _, next := range []ComplaintStatus{
		StatusSubmitted, StatusUnderReview, StatusInProgress,
		StatusResolved, StatusRejected, StatusClosed,
	} {
		assert.False(t, CanTransition(StatusClosed, next), "CLOSED must not transition to %q", next)
	}
}
