package application

import (
	"context"
	"time"

	admindomain "github.com/Stuart1162/fizzyjuice/internal/admin/domain"
	publicdomain "github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

// JobRepository exposes admin operations on jobs.
type JobRepository interface {
	FindAll(ctx context.Context, draft *bool) ([]publicdomain.Job, error)
	FindByID(ctx context.Context, id string) (*publicdomain.Job, error)
	Update(ctx context.Context, job *publicdomain.Job) error
	Delete(ctx context.Context, id string) error
}

// MetricsRepository reads and removes job engagement counters.
type MetricsRepository interface {
	Find(ctx context.Context, jobID string) (*publicdomain.JobMetrics, error)
	Delete(ctx context.Context, jobID string) error
}

// SavedJobCleaner removes saved-job snapshots when a job or user goes away.
type SavedJobCleaner interface {
	DeleteByJob(ctx context.Context, jobID string) error
	DeleteByUser(ctx context.Context, userID string) error
}

// UserDirectory lists and removes user documents.
type UserDirectory interface {
	ListProfiles(ctx context.Context) ([]publicdomain.Profile, error)
	ListSeekerPreferences(ctx context.Context) ([]publicdomain.Preferences, error)
	// DeleteUser removes the profile and preferences. Reports false when nothing existed.
	DeleteUser(ctx context.Context, userID string) (bool, error)
}

// AnalyticsCache stores computed strength statistics.
type AnalyticsCache interface {
	GetStrengths(ctx context.Context) (*admindomain.StrengthStats, bool, error)
	SetStrengths(ctx context.Context, stats admindomain.StrengthStats, ttl time.Duration) error
}

// EventPublisher broadcasts job lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, event publicdomain.JobEvent) error
}

// JobService describes admin job moderation use-cases.
type JobService interface {
	List(ctx context.Context, session publicdomain.Session, view admindomain.JobView) ([]publicdomain.Job, error)
	Approve(ctx context.Context, session publicdomain.Session, id string) (*publicdomain.Job, error)
	Restore(ctx context.Context, session publicdomain.Session, id string) (*publicdomain.Job, error)
	Delete(ctx context.Context, session publicdomain.Session, id string) error
}

// ReportService describes the engagement report.
type ReportService interface {
	ActiveJobs(ctx context.Context, session publicdomain.Session) ([]admindomain.JobReport, error)
}

// UserService describes admin user management.
type UserService interface {
	List(ctx context.Context, session publicdomain.Session, filter admindomain.RoleFilter) (*admindomain.UserListing, error)
	Delete(ctx context.Context, session publicdomain.Session, userID string) error
}

// AnalyticsService describes superadmin analytics.
type AnalyticsService interface {
	Strengths(ctx context.Context, session publicdomain.Session) (*admindomain.StrengthStats, error)
}

func requireAdmin(session publicdomain.Session) error {
	if !session.Authenticated() {
		return publicdomain.ErrUnauthenticated
	}
	if !session.IsAdmin() {
		return publicdomain.ErrForbidden
	}
	return nil
}

func requireSuperadmin(session publicdomain.Session) error {
	if !session.Authenticated() {
		return publicdomain.ErrUnauthenticated
	}
	if !session.Superadmin {
		return publicdomain.ErrForbidden
	}
	return nil
}
