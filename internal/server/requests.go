package server

import (
	"errors"
	"net/http"
	"strings"

	"drishti/internal/storage"
	"drishti/internal/utils"
	"drishti/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// handleSubmitRequest accepts an unauthenticated NGO registration
// application: a multipart form with the applicant's details and exactly
// one proof document. No User row is created here; applicants only enter
// the authentication path once police approve the request.
func (s *Service) handleSubmitRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(s.config.MaxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, kindValidation, "invalid multipart form")
		return
	}

	var input registrationInput
	if err := decoder.Decode(&input, r.MultipartForm.Value); err != nil {
		s.logger.WithError(err).Error("failed to decode registration form")
		s.respondError(w, http.StatusBadRequest, kindValidation, "invalid form fields")
		return
	}

	fieldErrors := validateRegistrationInput(&input)

	files := r.MultipartForm.File["document"]
	if len(files) != 1 {
		fieldErrors["document"] = "Exactly one registration proof document is required."
	}

	if len(fieldErrors) > 0 {
		s.logger.WithField("field_errors", fieldErrors).Info("validation errors during registration submission")
		s.respondFieldErrors(w, fieldErrors)
		return
	}

	if _, err := s.userRepo.UserByEmail(ctx, input.Email); err == nil {
		s.respondDomainError(w, types.ErrDuplicateEmail)
		return
	} else if !errors.Is(err, types.ErrUserNotFound) {
		s.logger.WithError(err).Error("failed to check email during registration submission")
		s.internalServerError(w)
		return
	}

	pending, err := s.requestRepo.PendingByEmail(ctx, input.Email)
	if err != nil {
		s.logger.WithError(err).Error("failed to check pending requests during registration submission")
		s.internalServerError(w)
		return
	}
	if pending {
		s.respondDomainError(w, types.ErrDuplicateEmail)
		return
	}

	header := files[0]
	ext, contentType, err := storage.ValidateDocumentUpload(header.Filename, header.Size, s.config.MaxUploadBytes)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	file, err := header.Open()
	if err != nil {
		s.logger.WithError(err).Error("failed to open uploaded document")
		s.internalServerError(w)
		return
	}
	defer file.Close()

	key := storage.DocumentKey(ext)
	if err := s.storage.Save(ctx, key, file, contentType); err != nil {
		s.logger.WithError(err).WithField("key", key).Error("failed to store registration document")
		s.internalServerError(w)
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.WithError(err).Error("failed to hash password")
		s.internalServerError(w)
		return
	}

	request := &types.Request{
		NGOName:        input.NGOName,
		RegistrationID: input.RegistrationID,
		Description:    input.Description,
		ContactNumber:  input.ContactNumber,
		Email:          input.Email,
		Location:       input.Location,
		DocumentPath:   key,
		PasswordHash:   string(passwordHash),
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		s.logger.WithError(err).Error("failed to create registration request")
		s.internalServerError(w)
		return
	}

	s.logger.WithField("request_id", request.ID).Info("registration request submitted")

	s.respondJSON(w, http.StatusCreated, map[string]string{
		"msg": "Registration submitted. Your application is pending verification by the police department.",
	})
}

func (s *Service) handlePendingRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := s.requestRepo.PendingRequests(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch pending requests")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, requests)
}

// handleApproveRequest performs the terminal approval transition: one
// transaction creates the NGO user, links it to the request, and queues
// the approval notification.
func (s *Service) handleApproveRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	requestID := strings.TrimSpace(flow.Param(ctx, "id"))

	request, err := s.requestRepo.Request(ctx, requestID)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	if request.Status != types.RequestStatusPending {
		s.respondDomainError(w, types.ErrRequestAlreadyDecided)
		return
	}

	ngoRole, err := s.roleRepo.RoleByName(ctx, types.RoleNGO)
	if err != nil {
		if errors.Is(err, types.ErrRoleNotFound) {
			s.logger.Error("ngo role is not seeded")
			s.respondDomainError(w, types.ErrRoleNotConfigured)
			return
		}
		s.logger.WithError(err).Error("failed to resolve ngo role")
		s.internalServerError(w)
		return
	}

	user := &types.User{
		ID:           utils.NanoID(),
		Name:         request.NGOName,
		Email:        request.Email,
		PasswordHash: request.PasswordHash,
		RoleID:       ngoRole.ID,
		Status:       types.UserStatusActive,
		Verification: types.VerificationApproved,
	}

	notification := &types.Notification{
		Message: types.StatusNotificationMessage(string(types.VerificationApproved)),
	}

	if err := s.requestRepo.Approve(ctx, requestID, user, notification); err != nil {
		s.respondDomainError(w, err)
		return
	}

	s.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    user.ID,
	}).Info("registration request approved")

	s.respondJSON(w, http.StatusOK, map[string]string{"msg": "Registration approved. NGO account created."})
}

func (s *Service) handleRejectRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	requestID := strings.TrimSpace(flow.Param(ctx, "id"))

	if err := s.requestRepo.Reject(ctx, requestID); err != nil {
		s.respondDomainError(w, err)
		return
	}

	s.logger.WithField("request_id", requestID).Info("registration request rejected")

	s.respondJSON(w, http.StatusOK, map[string]string{"msg": "Registration rejected."})
}
