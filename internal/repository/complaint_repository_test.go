package repository

import (
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/complaint-service/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestBuildFilterClausesEmpty(t *testing.T) {
	clauses, args := buildFilterClauses(ComplaintFilter{})

	assert.Equal(t, []string{"1=1"}, clauses)
	assert.Empty(t, args)
}

func TestBuildFilterClausesAllFields(t *testing.T) {
	filter := ComplaintFilter{
		MinistryID:   ptr("m1"),
		UserID:       ptr("u1"),
		AssignedToID: ptr("s1"),
		Statuses:     []domain.ComplaintStatus{domain.StatusSubmitted, domain.StatusInProgress},
		Priorities:   []domain.ComplaintPriority{domain.PriorityUrgent},
		SearchTerm:   ptr("  Streetlight  "),
	}

	clauses, args := buildFilterClauses(filter)
	where := strings.Join(clauses, " AND ")

	assert.Contains(t, where, "c.ministry_id=$1")
	assert.Contains(t, where, "c.user_id=$2")
	assert.Contains(t, where, "c.assigned_to_id=$3")
	assert.Contains(t, where, "c.status IN ($4,$5)")
	assert.Contains(t, where, "c.priority IN ($6)")
	assert.Contains(t, where, "LOWER(c.title) LIKE $7")

	assert.Len(t, args, 7)
	assert.Equal(t, "%streetlight%", args[6], "search term is trimmed, lowered and wrapped")
}

func TestBuildFilterClausesBlankSearchIgnored(t *testing.T) {
	clauses, args := buildFilterClauses(ComplaintFilter{SearchTerm: ptr("   ")})

	assert.Equal(t, []string{"1=1"}, clauses)
	assert.Empty(t, args)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("plain error")))
	assert.False(t, IsUniqueViolation(nil))
}
