package server

import (
	"context"

	"drishti/internal/store"
	"drishti/pkg/types"
)

// Handlers depend on narrow store interfaces rather than the concrete
// repositories, so they can be exercised without a database.

type roleStore interface {
	RoleByName(ctx context.Context, name types.RoleName) (*types.Role, error)
	RoleByID(ctx context.Context, roleID string) (*types.Role, error)
}

type userStore interface {
	User(ctx context.Context, userID string) (*types.User, error)
	UserByEmail(ctx context.Context, email string) (*types.User, error)
	PendingNGOs(ctx context.Context, ngoRoleID string) ([]*types.User, error)
	Update(ctx context.Context, userID string, user *types.User) error
	UpdateNGOStatus(ctx context.Context, userID, status string, notification *types.Notification) error
}

type requestStore interface {
	Request(ctx context.Context, requestID string) (*types.Request, error)
	PendingRequests(ctx context.Context) ([]*types.Request, error)
	PendingByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, request *types.Request) error
	Approve(ctx context.Context, requestID string, user *types.User, notification *types.Notification) error
	Reject(ctx context.Context, requestID string) error
}

type notificationStore interface {
	NotificationsByRecipient(ctx context.Context, recipientID string) ([]*types.Notification, error)
	Create(ctx context.Context, notification *types.Notification) error
	MarkRead(ctx context.Context, notificationID, recipientID string) error
}

type reportStore interface {
	Report(ctx context.Context, reportID string) (*types.MissingReport, error)
	ReportsByStatus(ctx context.Context, status types.ReportStatus) ([]*types.MissingReport, error)
	ReportsByReporter(ctx context.Context, reporterID string) ([]*types.MissingReport, error)
	Create(ctx context.Context, report *types.MissingReport) error
	Transition(ctx context.Context, reportID, actorID string, from, to types.ReportStatus) error
	CreateMatchCheck(ctx context.Context, check *types.MatchCheck) error
}

type statsStore interface {
	Statistics(ctx context.Context) (*types.StatisticsData, error)
	NGODashboard(ctx context.Context, ngoUserID string) (*types.NGODashboardStats, error)
}

var (
	_ roleStore         = (*store.RoleRepository)(nil)
	_ userStore         = (*store.UserRepository)(nil)
	_ requestStore      = (*store.RequestRepository)(nil)
	_ notificationStore = (*store.NotificationRepository)(nil)
	_ reportStore       = (*store.ReportRepository)(nil)
	_ statsStore        = (*store.StatsRepository)(nil)
)
