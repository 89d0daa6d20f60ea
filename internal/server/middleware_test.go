package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"drishti/pkg/types"

	"github.com/sirupsen/logrus"
)

func authedService(t *testing.T) *Service {
	t.Helper()
	return &Service{
		logger:     logrus.New(),
		config:     &types.Config{TokenTTLMin: 60},
		signingKey: []byte("0123456789abcdef0123456789abcdef"),
	}
}

func TestRequireAuth(t *testing.T) {
	s := authedService(t)

	var gotUserID string
	var gotRole types.RoleName
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = s.userIDFromContext(r.Context())
		gotRole = s.roleFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	token, err := s.signToken("user-7", types.RolePolice)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	s.RequireAuth(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if gotUserID != "user-7" {
		t.Errorf("user id = %q, want user-7", gotUserID)
	}
	if gotRole != types.RolePolice {
		t.Errorf("role = %q, want police", gotRole)
	}
}

func TestRequireAuth_Rejections(t *testing.T) {
	s := authedService(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	})

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			s.RequireAuth(next).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	s := authedService(t)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	token, err := s.signToken("user-7", types.RoleFamily)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/reports/statistics", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	s.RequireAuth(s.RequireRole(types.RolePolice)(next)).ServeHTTP(rec, req)

	if called {
		t.Error("handler ran despite role mismatch")
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}

	// matching role passes through
	token, err = s.signToken("user-8", types.RolePolice)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/reports/statistics", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()

	s.RequireAuth(s.RequireRole(types.RolePolice)(next)).ServeHTTP(rec, req)

	if !called {
		t.Error("handler did not run for matching role")
	}
}
