package types

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// Request is an NGO registration application. No User row exists for the
// applicant until the request is approved, which keeps unvetted applicants
// out of the authentication path entirely.
type Request struct {
	ID             string        `db:"id" json:"id"`
	NGOName        string        `db:"ngo_name" json:"ngo_name"`
	RegistrationID string        `db:"registration_id" json:"registration_id"`
	Description    string        `db:"description" json:"description"`
	ContactNumber  string        `db:"contact_number" json:"contact_number"`
	Email          string        `db:"email" json:"email"`
	Location       string        `db:"location" json:"location"`
	DocumentPath   string        `db:"document_path" json:"document_path"`
	PasswordHash   string        `db:"password_hash" json:"-"`
	Status         RequestStatus `db:"status" json:"status"`
	ApprovedUserID *string       `db:"approved_user_id" json:"approved_user_id,omitempty"`
	DecidedAt      *time.Time    `db:"decided_at" json:"decided_at,omitempty"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
}
