package types

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrRoleNotFound         = errors.New("role not found")
	ErrRequestNotFound      = errors.New("registration request not found")
	ErrReportNotFound       = errors.New("missing report not found")
	ErrNotificationNotFound = errors.New("notification not found")

	ErrDuplicateEmail        = errors.New("email already registered")
	ErrNotRegistered         = errors.New("email is not registered")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrAccountFrozen         = errors.New("account is frozen")
	ErrRoleNotConfigured     = errors.New("role is not configured")
	ErrRequestAlreadyDecided = errors.New("registration request already decided")
	ErrInvalidStatus         = errors.New("invalid status value")
	ErrInvalidTransition     = errors.New("invalid report status transition")
	ErrUnsupportedFileType   = errors.New("unsupported file type")
	ErrFileTooLarge          = errors.New("file exceeds size limit")
)
