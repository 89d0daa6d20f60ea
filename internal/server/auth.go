package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"drishti/pkg/types"

	"golang.org/x/crypto/bcrypt"
)

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	// Portal is the app surface the user is logging into (family, ngo,
	// police). When set, a role mismatch is refused up front instead of
	// failing later on a forbidden route.
	Portal string `json:"portal"`
}

type loginResponse struct {
	Token string         `json:"token"`
	User  types.UserView `json:"user"`
}

func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input loginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, kindValidation, "invalid request body")
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		s.respondError(w, http.StatusBadRequest, kindValidation, "email and password are required")
		return
	}

	user, err := s.userRepo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, types.ErrUserNotFound) {
			s.respondDomainError(w, types.ErrNotRegistered)
			return
		}
		s.logger.WithError(err).Error("failed to fetch user for login")
		s.internalServerError(w)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		s.respondDomainError(w, types.ErrInvalidCredentials)
		return
	}

	if user.Status == types.UserStatusFrozen {
		s.respondDomainError(w, types.ErrAccountFrozen)
		return
	}

	role, err := s.roleRepo.RoleByID(ctx, user.RoleID)
	if err != nil {
		s.logger.WithError(err).WithField("role_id", user.RoleID).Error("failed to resolve role for login")
		s.internalServerError(w)
		return
	}

	roleName := types.RoleName(role.Name)
	if input.Portal != "" && !strings.EqualFold(input.Portal, role.Name) {
		s.respondError(w, http.StatusForbidden, kindRoleMismatch, "this account cannot log in to the selected portal")
		return
	}

	token, err := s.signToken(user.ID, roleName)
	if err != nil {
		s.logger.WithError(err).Error("failed to sign token")
		s.internalServerError(w)
		return
	}

	s.logger.WithField("user_id", user.ID).Info("user logged in")

	s.respondJSON(w, http.StatusOK, loginResponse{
		Token: token,
		User:  user.View(roleName),
	})
}
