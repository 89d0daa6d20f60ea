package types

import "time"

type Notification struct {
	ID          string    `db:"id" json:"id"`
	RecipientID string    `db:"recipient_id" json:"recipient_id"`
	Message     string    `db:"message" json:"message"`
	IsRead      bool      `db:"is_read" json:"is_read"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// StatusNotificationMessage returns the templated message sent to a user
// when police change their verification or account status. The empty string
// means the status carries no notification.
func StatusNotificationMessage(status string) string {
	switch status {
	case string(VerificationApproved):
		return "Your NGO account has been approved. You can now log in and start reviewing reports."
	case string(VerificationRejected):
		return "Your NGO account application has been rejected. Contact the police department for details."
	case string(UserStatusFrozen):
		return "Your account has been frozen by the police department. Contact support if you believe this is a mistake."
	default:
		return ""
	}
}
