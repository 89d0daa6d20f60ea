package server

import "net/http"

func (s *Service) handleStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.statsRepo.Statistics(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to aggregate statistics")
		s.respondError(w, http.StatusInternalServerError, kindAggregation, "failed to compute statistics")
		return
	}

	s.respondJSON(w, http.StatusOK, stats)
}

func (s *Service) handleNGODashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ngoUserID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.logger.WithError(err).Error("user id not found in context")
		s.internalServerError(w)
		return
	}

	stats, err := s.statsRepo.NGODashboard(ctx, ngoUserID)
	if err != nil {
		s.logger.WithError(err).Error("failed to aggregate ngo dashboard")
		s.respondError(w, http.StatusInternalServerError, kindAggregation, "failed to compute dashboard stats")
		return
	}

	s.respondJSON(w, http.StatusOK, stats)
}
