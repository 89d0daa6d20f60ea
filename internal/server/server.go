package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"drishti/internal/aimatch"
	"drishti/internal/storage"
	"drishti/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

type Service struct {
	logger *logrus.Logger
	config *types.Config

	roleRepo         roleStore
	userRepo         userStore
	requestRepo      requestStore
	notificationRepo notificationStore
	reportRepo       reportStore
	statsRepo        statsStore

	storage storage.Storage
	matcher *aimatch.Client

	signingKey []byte

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	roleRepo roleStore,
	userRepo userStore,
	requestRepo requestStore,
	notificationRepo notificationStore,
	reportRepo reportStore,
	statsRepo statsStore,
	fileStorage storage.Storage,
	matcher *aimatch.Client,
) (*Service, error) {
	mux := flow.New()

	signingKey, err := base64.StdEncoding.DecodeString(config.TokenSigningKey)
	if err != nil || len(signingKey) == 0 {
		return nil, fmt.Errorf("TOKEN_SIGNING_KEY must be a non-empty base64 value")
	}

	s := &Service{
		logger: logger,
		config: config,

		roleRepo:         roleRepo,
		userRepo:         userRepo,
		requestRepo:      requestRepo,
		notificationRepo: notificationRepo,
		reportRepo:       reportRepo,
		statsRepo:        statsRepo,

		storage: fileStorage,
		matcher: matcher,

		signingKey: signingKey,

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	r.HandleFunc("/api/auth/login", s.handleLogin, http.MethodPost)
	r.HandleFunc("/api/requests/submit-for-registration", s.handleSubmitRequest, http.MethodPost)

	// Registration review is police-only. Every route in the group is
	// authenticated; there is no unauthenticated review surface.
	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth, s.RequireRole(types.RolePolice))

		r.HandleFunc("/api/requests/pending-registrations", s.handlePendingRequests, http.MethodGet)
		r.HandleFunc("/api/requests/approve-registration/:id", s.handleApproveRequest, http.MethodPut)
		r.HandleFunc("/api/requests/reject-registration/:id", s.handleRejectRequest, http.MethodPut)

		r.HandleFunc("/api/users/pending-ngos", s.handlePendingNGOs, http.MethodGet)
		r.HandleFunc("/api/users/update-ngo-status/:id", s.handleUpdateNGOStatus, http.MethodPut)

		r.HandleFunc("/api/reports/statistics", s.handleStatistics, http.MethodGet)
	})

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth, s.RequireRole(types.RoleNGO))

		r.HandleFunc("/api/ngo/dashboard-stats", s.handleNGODashboard, http.MethodGet)
		r.HandleFunc("/api/reports/:id/check-match", s.handleCheckMatch, http.MethodPost)
	})

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth, s.RequireRole(types.RoleNGO, types.RolePolice))

		r.HandleFunc("/api/reports", s.handleListReports, http.MethodGet)
		r.HandleFunc("/api/reports/:id/verify", s.handleVerifyReport, http.MethodPut)
		r.HandleFunc("/api/reports/:id/reject", s.handleRejectReport, http.MethodPut)
		r.HandleFunc("/api/reports/:id/found", s.handleReportFound, http.MethodPut)
	})

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)

		r.HandleFunc("/api/users/me", s.handleCurrentUser, http.MethodGet)
		r.HandleFunc("/api/users/:id", s.handleUpdateProfile, http.MethodPut)

		r.HandleFunc("/api/reports", s.handleCreateReport, http.MethodPost)
		r.HandleFunc("/api/reports/mine", s.handleMyReports, http.MethodGet)

		r.HandleFunc("/api/notifications", s.handleNotifications, http.MethodGet)
		r.HandleFunc("/api/notifications/:id/read", s.handleMarkNotificationRead, http.MethodPut)
	})

	// Disk-backed uploads are served statically. Anyone holding a URL can
	// fetch the file; per-file access control is outside the threat model.
	if disk, ok := s.storage.(*storage.DiskStorage); ok {
		fileServer := http.FileServer(http.Dir(disk.Root()))
		r.Handle("/uploads/...", http.StripPrefix("/uploads/", fileServer), http.MethodGet)
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Service) userIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(contextKeyUserID).(string)
	if !ok {
		return "", fmt.Errorf("user id not found in context")
	}
	return userID, nil
}

func (s *Service) roleFromContext(ctx context.Context) types.RoleName {
	role, _ := ctx.Value(contextKeyRole).(types.RoleName)
	return role
}
