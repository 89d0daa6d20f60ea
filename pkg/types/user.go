package types

import "time"

// UserStatus is the account lifecycle state. It is deliberately separate
// from VerificationStatus: freezing an account does not undo its vetting.
type UserStatus string

const (
	UserStatusActive UserStatus = "active"
	UserStatusFrozen UserStatus = "frozen"
)

// VerificationStatus tracks NGO vetting independently of the account lifecycle.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

type User struct {
	ID               string             `db:"id"`
	Name             string             `db:"name"`
	Email            string             `db:"email"`
	PasswordHash     string             `db:"password_hash" json:"-"`
	RoleID           string             `db:"role_id"`
	Status           UserStatus         `db:"status"`
	Verification     VerificationStatus `db:"verification"`
	ProfilePhotoPath *string            `db:"profile_photo_path"`
	CreatedAt        time.Time          `db:"created_at"`
	UpdatedAt        time.Time          `db:"updated_at"`
}

// UserView is the shape returned to API clients: the role is resolved to
// its name and the password hash never leaves the server.
type UserView struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Email            string             `json:"email"`
	Role             RoleName           `json:"role"`
	Status           UserStatus         `json:"status"`
	Verification     VerificationStatus `json:"verification"`
	ProfilePhotoPath *string            `json:"profile_photo_path,omitempty"`
}

func (u *User) View(role RoleName) UserView {
	return UserView{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Role:             role,
		Status:           u.Status,
		Verification:     u.Verification,
		ProfilePhotoPath: u.ProfilePhotoPath,
	}
}
