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

// handleCreateReport files a new missing person report. Family accounts
// only; the report photo is mandatory since both NGO review and face
// matching work off it.
func (s *Service) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if s.roleFromContext(ctx) != types.RoleFamily {
		s.respondError(w, http.StatusForbidden, kindForbidden, "only family accounts can file missing reports")
		return
	}

	reporterID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("user id not found in context")
		s.internalServerError(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(s.config.MaxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, kindValidation, "invalid multipart form")
		return
	}

	var input reportInput
	if err := decoder.Decode(&input, r.MultipartForm.Value); err != nil {
		s.respondError(w, http.StatusBadRequest, kindValidation, "invalid form fields")
		return
	}

	fieldErrors := validateReportInput(&input)

	files := r.MultipartForm.File["photo"]
	if len(files) != 1 {
		fieldErrors["photo"] = "A photo of the missing person is required."
	}

	if len(fieldErrors) > 0 {
		s.respondFieldErrors(w, fieldErrors)
		return
	}

	header := files[0]
	ext, contentType, err := storage.ValidateImageUpload(header.Filename, header.Size, s.config.MaxUploadBytes)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	file, err := header.Open()
	if err != nil {
		s.logger.WithError(err).Error("failed to open uploaded report photo")
		s.internalServerError(w)
		return
	}
	defer file.Close()

	reportID := utils.NanoID()
	key := storage.ReportPhotoKey(reportID, ext)
	if err := s.storage.Save(ctx, key, file, contentType); err != nil {
		s.logger.WithError(err).WithField("key", key).Error("failed to store report photo")
		s.internalServerError(w)
		return
	}

	report := &types.MissingReport{
		ID:         reportID,
		ReporterID: reporterID,
		PersonName: input.PersonName,
		Gender:     input.Gender,
		Age:        input.Age,
		LastSeen:   input.LastSeen,
		PhotoPath:  key,
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		s.logger.WithError(err).Error("failed to create missing report")
		s.internalServerError(w)
		return
	}

	s.logger.WithFields(logrus.Fields{
		"report_id":   report.ID,
		"reporter_id": reporterID,
	}).Info("missing report filed")

	s.respondJSON(w, http.StatusCreated, report)
}

func (s *Service) handleListReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := types.ReportStatus(strings.TrimSpace(r.URL.Query().Get("status")))
	if status == "" {
		status = types.ReportStatusPendingVerification
	}

	switch status {
	case types.ReportStatusPendingVerification, types.ReportStatusVerified,
		types.ReportStatusRejected, types.ReportStatusFound:
	default:
		s.respondDomainError(w, types.ErrInvalidStatus)
		return
	}

	reports, err := s.reportRepo.ReportsByStatus(ctx, status)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch reports")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, reports)
}

func (s *Service) handleMyReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reporterID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("user id not found in context")
		s.internalServerError(w)
		return
	}

	reports, err := s.reportRepo.ReportsByReporter(ctx, reporterID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch own reports")
		s.internalServerError(w)
		return
	}

	s.respondJSON(w, http.StatusOK, reports)
}

func (s *Service) handleVerifyReport(w http.ResponseWriter, r *http.Request) {
	s.transitionReport(w, r, types.ReportStatusPendingVerification, types.ReportStatusVerified,
		"Your missing person report has been verified and is now actively being searched.")
}

func (s *Service) handleRejectReport(w http.ResponseWriter, r *http.Request) {
	s.transitionReport(w, r, types.ReportStatusPendingVerification, types.ReportStatusRejected, "")
}

func (s *Service) handleReportFound(w http.ResponseWriter, r *http.Request) {
	s.transitionReport(w, r, types.ReportStatusVerified, types.ReportStatusFound,
		"Good news: the person in your missing report has been found.")
}

// transitionReport moves a report along its lifecycle and, for transitions
// the reporter should hear about, notifies them.
func (s *Service) transitionReport(w http.ResponseWriter, r *http.Request, from, to types.ReportStatus, reporterMessage string) {
	ctx := r.Context()

	actorID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("user id not found in context")
		s.internalServerError(w)
		return
	}

	reportID := strings.TrimSpace(flow.Param(ctx, "id"))

	report, err := s.reportRepo.Report(ctx, reportID)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	if !report.Status.CanTransition(to) {
		s.respondDomainError(w, types.ErrInvalidTransition)
		return
	}

	if err := s.reportRepo.Transition(ctx, reportID, actorID, from, to); err != nil {
		s.respondDomainError(w, err)
		return
	}

	if reporterMessage != "" {
		notification := &types.Notification{
			RecipientID: report.ReporterID,
			Message:     reporterMessage,
		}
		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			s.logger.WithError(err).WithField("report_id", reportID).Warn("failed to notify reporter of transition")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"report_id": reportID,
		"from":      from,
		"to":        to,
		"actor_id":  actorID,
	}).Info("report transitioned")

	s.respondJSON(w, http.StatusOK, map[string]string{"msg": "Report updated."})
}

// handleCheckMatch forwards a sighting photo to the face recognition
// service and records the check for the volunteer's dashboard counts.
func (s *Service) handleCheckMatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if s.matcher == nil {
		s.respondError(w, http.StatusServiceUnavailable, kindInternal, "face matching is not configured")
		return
	}

	actorID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("user id not found in context")
		s.internalServerError(w)
		return
	}

	reportID := strings.TrimSpace(flow.Param(ctx, "id"))

	report, err := s.reportRepo.Report(ctx, reportID)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(s.config.MaxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, kindValidation, "invalid multipart form")
		return
	}

	files := r.MultipartForm.File["photo"]
	if len(files) != 1 {
		s.respondFieldErrors(w, map[string]string{"photo": "A sighting photo is required."})
		return
	}

	header := files[0]
	if _, _, err := storage.ValidateImageUpload(header.Filename, header.Size, s.config.MaxUploadBytes); err != nil {
		s.respondDomainError(w, err)
		return
	}

	file, err := header.Open()
	if err != nil {
		s.logger.WithError(err).Error("failed to open sighting photo")
		s.internalServerError(w)
		return
	}
	defer file.Close()

	result, err := s.matcher.FindMatch(ctx, file)
	if err != nil {
		s.logger.WithError(err).Error("face match check failed")
		s.respondError(w, http.StatusBadGateway, kindInternal, "face recognition service is unavailable")
		return
	}

	check := &types.MatchCheck{
		ReportID:   report.ID,
		CheckedBy:  actorID,
		Matched:    result.MatchFound,
		Confidence: result.Confidence,
	}
	if err := s.reportRepo.CreateMatchCheck(ctx, check); err != nil {
		s.logger.WithError(err).WithField("report_id", reportID).Warn("failed to record match check")
	}

	s.respondJSON(w, http.StatusOK, result)
}
