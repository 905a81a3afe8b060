package domain

import "time"

// Ministry is a government department owning a category of complaints.
type Ministry struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Color       string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
