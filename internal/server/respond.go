package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"drishti/pkg/types"
)

// Error kinds are the machine-readable contract with clients. Clients
// dispatch on kind, never on message text.
const (
	kindValidation          = "validation_error"
	kindDuplicateEmail      = "duplicate_email"
	kindNotRegistered       = "not_registered"
	kindInvalidCredentials  = "invalid_credentials"
	kindAccountFrozen       = "account_frozen"
	kindRoleMismatch        = "role_mismatch"
	kindUnauthorized        = "unauthorized"
	kindForbidden           = "forbidden"
	kindNotFound            = "not_found"
	kindAlreadyDecided      = "already_decided"
	kindInvalidStatus       = "invalid_status"
	kindInvalidTransition   = "invalid_transition"
	kindUnsupportedFileType = "unsupported_file_type"
	kindFileTooLarge        = "file_too_large"
	kindAggregation         = "aggregation_error"
	kindInternal            = "internal_error"
)

type errorBody struct {
	Kind    string            `json:"kind"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func decodeJSONBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func (s *Service) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

func (s *Service) respondError(w http.ResponseWriter, status int, kind, message string) {
	s.respondJSON(w, status, errorResponse{Error: errorBody{Kind: kind, Message: message}})
}

func (s *Service) respondFieldErrors(w http.ResponseWriter, fields map[string]string) {
	s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: errorBody{
		Kind:    kindValidation,
		Message: "please fix the highlighted fields",
		Fields:  fields,
	}})
}

func (s *Service) internalServerError(w http.ResponseWriter) {
	s.respondError(w, http.StatusInternalServerError, kindInternal, "something went wrong")
}

// respondDomainError maps sentinel errors from the store and storage
// layers onto HTTP statuses and error kinds.
func (s *Service) respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, types.ErrUserNotFound),
		errors.Is(err, types.ErrRequestNotFound),
		errors.Is(err, types.ErrReportNotFound),
		errors.Is(err, types.ErrNotificationNotFound):
		s.respondError(w, http.StatusNotFound, kindNotFound, err.Error())
	case errors.Is(err, types.ErrNotRegistered):
		s.respondError(w, http.StatusUnauthorized, kindNotRegistered, err.Error())
	case errors.Is(err, types.ErrInvalidCredentials):
		s.respondError(w, http.StatusUnauthorized, kindInvalidCredentials, err.Error())
	case errors.Is(err, types.ErrAccountFrozen):
		s.respondError(w, http.StatusForbidden, kindAccountFrozen, err.Error())
	case errors.Is(err, types.ErrRoleNotConfigured):
		s.respondError(w, http.StatusInternalServerError, kindInternal, err.Error())
	case errors.Is(err, types.ErrRequestAlreadyDecided):
		s.respondError(w, http.StatusConflict, kindAlreadyDecided, err.Error())
	case errors.Is(err, types.ErrInvalidTransition):
		s.respondError(w, http.StatusConflict, kindInvalidTransition, err.Error())
	case errors.Is(err, types.ErrInvalidStatus):
		s.respondError(w, http.StatusBadRequest, kindInvalidStatus, err.Error())
	case errors.Is(err, types.ErrDuplicateEmail):
		s.respondError(w, http.StatusBadRequest, kindDuplicateEmail, err.Error())
	case errors.Is(err, types.ErrUnsupportedFileType):
		s.respondError(w, http.StatusBadRequest, kindUnsupportedFileType, err.Error())
	case errors.Is(err, types.ErrFileTooLarge):
		s.respondError(w, http.StatusBadRequest, kindFileTooLarge, err.Error())
	default:
		s.logger.WithError(err).Error("unhandled domain error")
		s.internalServerError(w)
	}
}
