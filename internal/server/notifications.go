package server

import (
	"net/http"
	"strings"

	"github.com/alexedwards/flow"
)

func (s *Service) handleNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("user id not found in context")
		s.internalServerError(w)
		return
	}

	notifications, err := s.notificationRepo.NotificationsByRecipient(ctx, userID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch notifications")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, notifications)
}

func (s *Service) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("user id not found in context")
		s.internalServerError(w)
		return
	}

	notificationID := strings.TrimSpace(flow.Param(ctx, "id"))

	if err := s.notificationRepo.MarkRead(ctx, notificationID, userID); err != nil {
		s.respondDomainError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"msg": "Notification marked as read."})
}
