package domain

import "time"

// InitialUpdateMessage is recorded on every newly submitted complaint.
const InitialUpdateMessage = "Complaint has been submitted and is under review."

// ComplaintUpdate is an append-only audit/timeline entry for a complaint.
type ComplaintUpdate struct {
	ID          string
	ComplaintID string
	Status      ComplaintStatus
	Message     string
	UpdatedByID string
	CreatedAt   time.Time
}
