package types

import "time"

type ReportStatus string

const (
	ReportStatusPendingVerification ReportStatus = "pending_verification"
	ReportStatusVerified            ReportStatus = "verified"
	ReportStatusRejected            ReportStatus = "rejected"
	ReportStatusFound               ReportStatus = "found"
)

// CanTransition reports whether a missing report may move from its current
// status to next. Verification decides pending reports; only verified
// reports can be marked found. Decided states are terminal otherwise.
func (s ReportStatus) CanTransition(next ReportStatus) bool {
	switch s {
	case ReportStatusPendingVerification:
		return next == ReportStatusVerified || next == ReportStatusRejected
	case ReportStatusVerified:
		return next == ReportStatusFound
	default:
		return false
	}
}

type MissingReport struct {
	ID            string       `db:"id" json:"id"`
	ReporterID    string       `db:"reporter_id" json:"reporter_id"`
	PersonName    string       `db:"person_name" json:"person_name"`
	Gender        string       `db:"gender" json:"gender"`
	Age           int          `db:"age" json:"age"`
	LastSeen      string       `db:"last_seen" json:"last_seen"`
	PhotoPath     string       `db:"photo_path" json:"photo_path"`
	Status        ReportStatus `db:"status" json:"status"`
	ReportedAt    time.Time    `db:"reported_at" json:"reported_at"`
	ReviewedByNGO *string      `db:"reviewed_by_ngo" json:"reviewed_by_ngo,omitempty"`
	ReviewedAt    *time.Time   `db:"reviewed_at" json:"reviewed_at,omitempty"`
	FoundByNGO    *string      `db:"found_by_ngo" json:"found_by_ngo,omitempty"`
	FoundAt       *time.Time   `db:"found_at" json:"found_at,omitempty"`
}

// MatchCheck is an audit row recorded every time an NGO volunteer runs a
// sighting photo against the face recognition service.
type MatchCheck struct {
	ID         string    `db:"id" json:"id"`
	ReportID   string    `db:"report_id" json:"report_id"`
	CheckedBy  string    `db:"checked_by" json:"checked_by"`
	Matched    bool      `db:"matched" json:"matched"`
	Confidence float64   `db:"confidence" json:"confidence"`
	CheckedAt  time.Time `db:"checked_at" json:"checked_at"`
}
