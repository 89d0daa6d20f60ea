package server

import (
	"net/http"
	"strings"

	"drishti/internal/storage"
	"drishti/internal/utils"
	"drishti/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/sirupsen/logrus"
)

func (s *Service) handlePendingNGOs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ngoRole, err := s.roleRepo.RoleByName(ctx, types.RoleNGO)
	if err != nil {
		s.logger.WithError(err).Error("failed to resolve ngo role")
		s.internalServerError(w)
		return
	}

	users, err := s.userRepo.PendingNGOs(ctx, ngoRole.ID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch pending ngos")
		s.internalServerError(w)
		return
	}

	views := make([]types.UserView, 0, len(users))
	for _, user := range users {
		views = append(views, user.View(types.RoleNGO))
	}

	s.respondJSON(w, http.StatusOK, views)
}

type updateStatusInput struct {
	Status string `json:"status"`
}

// handleUpdateNGOStatus is the administrative lever over existing NGO
// accounts: approved/rejected adjust the verification state, frozen locks
// the account. The status change and its notification to the affected user
// are applied in one transaction, so each accepted change emits exactly
// one notification.
func (s *Service) handleUpdateNGOStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := strings.TrimSpace(flow.Param(ctx, "id"))

	var input updateStatusInput
	if err := decodeJSONBody(r, &input); err != nil {
		s.respondError(w, http.StatusBadRequest, kindValidation, "invalid request body")
		return
	}

	status := strings.ToLower(strings.TrimSpace(input.Status))
	switch status {
	case string(types.VerificationApproved), string(types.VerificationRejected), string(types.UserStatusFrozen):
	default:
		s.respondDomainError(w, types.ErrInvalidStatus)
		return
	}

	notification := &types.Notification{
		Message: types.StatusNotificationMessage(status),
	}
	if err := s.userRepo.UpdateNGOStatus(ctx, userID, status, notification); err != nil {
		s.respondDomainError(w, err)
		return
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"status":  status,
	}).Info("ngo status updated")

	s.respondJSON(w, http.StatusOK, map[string]string{"msg": "Status updated."})
}

func (s *Service) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("user id not found in context")
		s.internalServerError(w)
		return
	}

	user, err := s.userRepo.User(ctx, userID)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, user.View(s.roleFromContext(ctx)))
}

type profileInput struct {
	Name string `form:"name"`
}

// handleUpdateProfile lets a user change their display name and profile
// photo. The new photo is written before the old one is deleted, so a
// crash mid-way leaves an orphan file at worst, never a user document
// pointing at a missing photo.
func (s *Service) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actorID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("user id not found in context")
		s.internalServerError(w)
		return
	}

	userID := strings.TrimSpace(flow.Param(ctx, "id"))
	if userID != actorID {
		s.respondError(w, http.StatusForbidden, kindForbidden, "you can only update your own profile")
		return
	}

	user, err := s.userRepo.User(ctx, userID)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(s.config.MaxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, kindValidation, "invalid multipart form")
		return
	}

	var input profileInput
	if err := decoder.Decode(&input, r.MultipartForm.Value); err != nil {
		s.respondError(w, http.StatusBadRequest, kindValidation, "invalid form fields")
		return
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = name
	}

	oldPhoto := utils.PtrString(user.ProfilePhotoPath)

	if files := r.MultipartForm.File["profile_photo"]; len(files) > 0 {
		header := files[0]

		ext, contentType, err := storage.ValidateImageUpload(header.Filename, header.Size, s.config.MaxUploadBytes)
		if err != nil {
			s.respondDomainError(w, err)
			return
		}

		file, err := header.Open()
		if err != nil {
			s.logger.WithError(err).Error("failed to open uploaded profile photo")
			s.internalServerError(w)
			return
		}
		defer file.Close()

		key := storage.ProfilePhotoKey(userID, ext)
		if err := s.storage.Save(ctx, key, file, contentType); err != nil {
			s.logger.WithError(err).WithField("key", key).Error("failed to store profile photo")
			s.internalServerError(w)
			return
		}

		user.ProfilePhotoPath = utils.StringPtr(key)
	}

	if err := s.userRepo.Update(ctx, userID, user); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("failed to update user profile")
		s.internalServerError(w)
		return
	}

	newPhoto := utils.PtrString(user.ProfilePhotoPath)
	if oldPhoto != "" && oldPhoto != newPhoto {
		if err := s.storage.Delete(ctx, oldPhoto); err != nil {
			// The new photo is already live; losing the old file only
			// leaks disk space, so log and move on.
			s.logger.WithError(err).WithField("key", oldPhoto).Warn("failed to delete replaced profile photo")
		}
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"msg":  "Profile updated.",
		"user": user.View(s.roleFromContext(ctx)),
	})
}
