package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"drishti/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type fakeRoleStore struct {
	roleByName func(ctx context.Context, name types.RoleName) (*types.Role, error)
	roleByID   func(ctx context.Context, roleID string) (*types.Role, error)
}

func (f *fakeRoleStore) RoleByName(ctx context.Context, name types.RoleName) (*types.Role, error) {
	return f.roleByName(ctx, name)
}

func (f *fakeRoleStore) RoleByID(ctx context.Context, roleID string) (*types.Role, error) {
	return f.roleByID(ctx, roleID)
}

type fakeUserStore struct {
	user            func(ctx context.Context, userID string) (*types.User, error)
	userByEmail     func(ctx context.Context, email string) (*types.User, error)
	pendingNGOs     func(ctx context.Context, ngoRoleID string) ([]*types.User, error)
	update          func(ctx context.Context, userID string, user *types.User) error
	updateNGOStatus func(ctx context.Context, userID, status string, notification *types.Notification) error
}

func (f *fakeUserStore) User(ctx context.Context, userID string) (*types.User, error) {
	return f.user(ctx, userID)
}

func (f *fakeUserStore) UserByEmail(ctx context.Context, email string) (*types.User, error) {
	return f.userByEmail(ctx, email)
}

func (f *fakeUserStore) PendingNGOs(ctx context.Context, ngoRoleID string) ([]*types.User, error) {
	return f.pendingNGOs(ctx, ngoRoleID)
}

func (f *fakeUserStore) Update(ctx context.Context, userID string, user *types.User) error {
	return f.update(ctx, userID, user)
}

func (f *fakeUserStore) UpdateNGOStatus(ctx context.Context, userID, status string, notification *types.Notification) error {
	return f.updateNGOStatus(ctx, userID, status, notification)
}

type fakeRequestStore struct {
	request         func(ctx context.Context, requestID string) (*types.Request, error)
	pendingRequests func(ctx context.Context) ([]*types.Request, error)
	pendingByEmail  func(ctx context.Context, email string) (bool, error)
	create          func(ctx context.Context, request *types.Request) error
	approve         func(ctx context.Context, requestID string, user *types.User, notification *types.Notification) error
	reject          func(ctx context.Context, requestID string) error
}

func (f *fakeRequestStore) Request(ctx context.Context, requestID string) (*types.Request, error) {
	return f.request(ctx, requestID)
}

func (f *fakeRequestStore) PendingRequests(ctx context.Context) ([]*types.Request, error) {
	return f.pendingRequests(ctx)
}

func (f *fakeRequestStore) PendingByEmail(ctx context.Context, email string) (bool, error) {
	return f.pendingByEmail(ctx, email)
}

func (f *fakeRequestStore) Create(ctx context.Context, request *types.Request) error {
	return f.create(ctx, request)
}

func (f *fakeRequestStore) Approve(ctx context.Context, requestID string, user *types.User, notification *types.Notification) error {
	return f.approve(ctx, requestID, user, notification)
}

func (f *fakeRequestStore) Reject(ctx context.Context, requestID string) error {
	return f.reject(ctx, requestID)
}

type fakeStatsStore struct {
	statistics   func(ctx context.Context) (*types.StatisticsData, error)
	ngoDashboard func(ctx context.Context, ngoUserID string) (*types.NGODashboardStats, error)
}

func (f *fakeStatsStore) Statistics(ctx context.Context) (*types.StatisticsData, error) {
	return f.statistics(ctx)
}

func (f *fakeStatsStore) NGODashboard(ctx context.Context, ngoUserID string) (*types.NGODashboardStats, error) {
	return f.ngoDashboard(ctx, ngoUserID)
}

func handlerService(t *testing.T) *Service {
	t.Helper()
	return &Service{
		logger:     logrus.New(),
		config:     &types.Config{TokenTTLMin: 60, MaxUploadBytes: 10 << 20},
		signingKey: []byte("0123456789abcdef0123456789abcdef"),
	}
}

// routed builds the full router around the service so tests reach handlers
// the way clients do, including path parameters and role gates.
func routed(s *Service) http.Handler {
	mux := flow.New()
	s.buildRouter(mux)
	return mux
}

func bearer(t *testing.T, s *Service, userID string, role types.RoleName) string {
	t.Helper()
	token, err := s.signToken(userID, role)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + token
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error
}

func TestLoginWrongPasswordYieldsNoToken(t *testing.T) {
	s := handlerService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	s.userRepo = &fakeUserStore{
		userByEmail: func(ctx context.Context, email string) (*types.User, error) {
			if email != "ngo@example.org" {
				return nil, types.ErrUserNotFound
			}
			return &types.User{
				ID:           "user-1",
				Email:        email,
				PasswordHash: string(hash),
				Status:       types.UserStatusActive,
			}, nil
		},
	}

	cases := []struct {
		name     string
		body     string
		wantKind string
	}{
		{"wrong password", `{"email":"ngo@example.org","password":"wrong"}`, kindInvalidCredentials},
		{"unknown email", `{"email":"nobody@example.org","password":"correct-horse"}`, kindNotRegistered},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			s.handleLogin(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}

			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if _, ok := body["token"]; ok {
				t.Error("failed login response contains a token")
			}

			if kind := decodeError(t, rec).Kind; kind != tc.wantKind {
				t.Errorf("kind = %q, want %q", kind, tc.wantKind)
			}
		})
	}
}

func TestApproveRequestAlreadyDecided(t *testing.T) {
	cases := []struct {
		name             string
		status           types.RequestStatus
		approveErr       error
		wantApproveCalls int
	}{
		// the request left pending before the handler ran
		{"already approved", types.RequestStatusApproved, nil, 0},
		// the request was decided between the handler's read and the
		// guarded update
		{"lost decide race", types.RequestStatusPending, types.ErrRequestAlreadyDecided, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := handlerService(t)

			approveCalls := 0
			s.roleRepo = &fakeRoleStore{
				roleByName: func(ctx context.Context, name types.RoleName) (*types.Role, error) {
					return &types.Role{ID: "role-ngo", Name: string(types.RoleNGO)}, nil
				},
			}
			s.requestRepo = &fakeRequestStore{
				request: func(ctx context.Context, requestID string) (*types.Request, error) {
					return &types.Request{
						ID:           requestID,
						NGOName:      "Helping Hands",
						Email:        "helping@example.org",
						PasswordHash: "x",
						Status:       tc.status,
					}, nil
				},
				approve: func(ctx context.Context, requestID string, user *types.User, notification *types.Notification) error {
					approveCalls++
					return tc.approveErr
				},
			}

			handler := routed(s)
			auth := bearer(t, s, "officer-1", types.RolePolice)

			req := httptest.NewRequest(http.MethodPut, "/api/requests/approve-registration/req-1", nil)
			req.Header.Set("Authorization", auth)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusConflict {
				t.Errorf("status = %d, want 409", rec.Code)
			}
			if kind := decodeError(t, rec).Kind; kind != kindAlreadyDecided {
				t.Errorf("kind = %q, want %q", kind, kindAlreadyDecided)
			}
			if approveCalls != tc.wantApproveCalls {
				t.Errorf("approve calls = %d, want %d", approveCalls, tc.wantApproveCalls)
			}
		})
	}
}

func TestUpdateNGOStatusQueuesOneNotification(t *testing.T) {
	s := handlerService(t)

	var calls int
	var gotUserID, gotStatus string
	var gotNotification *types.Notification
	s.userRepo = &fakeUserStore{
		updateNGOStatus: func(ctx context.Context, userID, status string, notification *types.Notification) error {
			calls++
			gotUserID = userID
			gotStatus = status
			gotNotification = notification
			return nil
		},
	}

	handler := routed(s)
	auth := bearer(t, s, "officer-1", types.RolePolice)

	req := httptest.NewRequest(http.MethodPut, "/api/users/update-ngo-status/ngo-9", strings.NewReader(`{"status":"approved"}`))
	req.Header.Set("Authorization", auth)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if calls != 1 {
		t.Fatalf("store calls = %d, want exactly 1", calls)
	}
	if gotUserID != "ngo-9" {
		t.Errorf("user id = %q, want ngo-9", gotUserID)
	}
	if gotStatus != string(types.VerificationApproved) {
		t.Errorf("status = %q, want approved", gotStatus)
	}
	if gotNotification == nil || gotNotification.Message != types.StatusNotificationMessage(gotStatus) {
		t.Errorf("notification = %+v, want approval message", gotNotification)
	}

	// an unknown status is rejected before it reaches the store
	req = httptest.NewRequest(http.MethodPut, "/api/users/update-ngo-status/ngo-9", strings.NewReader(`{"status":"banana"}`))
	req.Header.Set("Authorization", auth)
	rec = httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if kind := decodeError(t, rec).Kind; kind != kindInvalidStatus {
		t.Errorf("kind = %q, want %q", kind, kindInvalidStatus)
	}
	if calls != 1 {
		t.Errorf("store calls = %d after invalid status, want still 1", calls)
	}
}

func TestNGODashboardZeroActivity(t *testing.T) {
	s := handlerService(t)
	s.statsRepo = &fakeStatsStore{
		ngoDashboard: func(ctx context.Context, ngoUserID string) (*types.NGODashboardStats, error) {
			return &types.NGODashboardStats{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/ngo/dashboard-stats", nil)
	req = req.WithContext(context.WithValue(req.Context(), contextKeyUserID, "ngo-1"))
	rec := httptest.NewRecorder()

	s.handleNGODashboard(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	for _, key := range []string{"photosReviewedToday", "aiMatchesChecked", "reportsSent"} {
		v, ok := body[key]
		if !ok {
			t.Errorf("%s missing from zero-activity dashboard", key)
			continue
		}
		if v != float64(0) {
			t.Errorf("%s = %v, want explicit 0", key, v)
		}
	}
}
