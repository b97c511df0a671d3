package application

import (
	"context"
	"errors"
	"time"

	"github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

// JobRepository は Public コンテキストで求人を読み書きするためのポート。
type JobRepository interface {
	List(ctx context.Context, query JobQuery) ([]domain.Job, error)
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	FindByRef(ctx context.Context, ref string) (*domain.Job, error)
	RefExists(ctx context.Context, ref string) (bool, error)
	Create(ctx context.Context, job *domain.Job) error
	Update(ctx context.Context, job *domain.Job) error
	Delete(ctx context.Context, id string) error
}

// ProfileRepository reads and writes users/{uid}/prefs documents.
type ProfileRepository interface {
	FindProfile(ctx context.Context, userID string) (*domain.Profile, error)
	UpsertProfile(ctx context.Context, profile *domain.Profile) (created bool, err error)
	FindPreferences(ctx context.Context, userID string) (*domain.Preferences, error)
	SavePreferences(ctx context.Context, userID string, prefs domain.Preferences) error
}

// SavedJobRepository reads and writes users/{uid}/savedJobs snapshots.
type SavedJobRepository interface {
	List(ctx context.Context, userID string) ([]domain.SavedJob, error)
	Find(ctx context.Context, userID, jobID string) (*domain.SavedJob, error)
	Save(ctx context.Context, snapshot domain.SavedJob, at time.Time) error
	Remove(ctx context.Context, userID, jobID string) (bool, error)
	SetApplied(ctx context.Context, userID, jobID string, applied bool, at time.Time) (bool, error)
	DeleteByJob(ctx context.Context, jobID string) error
}

// MetricsRepository applies atomic counter increments on jobMetrics/{jobId}.
type MetricsRepository interface {
	Increment(ctx context.Context, jobID string, kind domain.MetricKind, delta int64) error
	Find(ctx context.Context, jobID string) (*domain.JobMetrics, error)
	Delete(ctx context.Context, jobID string) error
}

// PendingPostRepository holds job drafts while the poster is at the hosted checkout.
type PendingPostRepository interface {
	Create(ctx context.Context, post *domain.PendingPost) error
	Find(ctx context.Context, sessionID string) (*domain.PendingPost, error)
	// Claim atomically moves an awaiting post to created. Returns domain.ErrNotFound when nothing was awaiting.
	Claim(ctx context.Context, sessionID string, at time.Time) (*domain.PendingPost, error)
	AttachJob(ctx context.Context, sessionID, jobID string) error
	Release(ctx context.Context, sessionID string) error
	Cancel(ctx context.Context, sessionID string, at time.Time) error
}

// EventPublisher broadcasts job lifecycle events after successful writes.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.JobEvent) error
}

// Notifier sends admin notification emails. Implementations log failures and never return them.
type Notifier interface {
	UserCreated(ctx context.Context, profile domain.Profile)
	DraftJobCreated(ctx context.Context, job domain.Job)
}

// CheckoutGateway creates and inspects hosted checkout sessions.
type CheckoutGateway interface {
	CreateSession(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutSession, error)
	GetSession(ctx context.Context, id string) (*domain.CheckoutSession, error)
}

// ErrCheckoutUnavailable is returned when the payment processor is not configured.
var ErrCheckoutUnavailable = errors.New("checkout is not configured")

// JobQuery narrows the repository scan. Visibility is applied in the domain, not here.
type JobQuery struct {
	Draft     *bool
	CreatedBy string
}

// JobQueryService describes read use-cases over jobs.
type JobQueryService interface {
	List(ctx context.Context, session domain.Session, filter domain.Filter) ([]domain.Job, error)
	Detail(ctx context.Context, session domain.Session, id string) (*domain.Job, error)
	DetailByRef(ctx context.Context, session domain.Session, ref string) (*domain.Job, error)
	Mine(ctx context.Context, session domain.Session) ([]domain.Job, error)
	Personalized(ctx context.Context, session domain.Session) ([]domain.RankedJob, error)
}

// JobCommandService describes job write use-cases.
type JobCommandService interface {
	Create(ctx context.Context, session domain.Session, job domain.Job) (*domain.Job, error)
	Edit(ctx context.Context, session domain.Session, id string, job domain.Job) (*domain.Job, error)
	Delete(ctx context.Context, session domain.Session, id string) error
}

// SavedJobService describes the per-user saved list.
type SavedJobService interface {
	List(ctx context.Context, session domain.Session) ([]domain.SavedJob, error)
	Save(ctx context.Context, session domain.Session, jobID string) (*domain.SavedJob, error)
	Unsave(ctx context.Context, session domain.Session, jobID string) error
	Toggle(ctx context.Context, session domain.Session, jobID string) (bool, error)
	SetApplied(ctx context.Context, session domain.Session, jobID string, applied bool) (*domain.SavedJob, error)
}

// MetricsService records engagement counters.
type MetricsService interface {
	Record(ctx context.Context, session domain.Session, jobID string, kind domain.MetricKind) error
}

// ProfileService describes profile and personalisation use-cases.
type ProfileService interface {
	Profile(ctx context.Context, session domain.Session) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, session domain.Session, cmd UpdateProfileCommand) (*domain.Profile, error)
	Preferences(ctx context.Context, session domain.Session) (*domain.Preferences, error)
	SavePreferences(ctx context.Context, session domain.Session, prefs domain.Preferences) (*domain.Preferences, error)
}

// PostingService describes the paid posting flow and the standalone checkout endpoint.
type PostingService interface {
	CreateCheckout(ctx context.Context, session domain.Session, cmd CheckoutCommand) (*domain.CheckoutSession, error)
	StartPaidPost(ctx context.Context, session domain.Session, job domain.Job, cmd CheckoutCommand) (*domain.CheckoutSession, error)
	CompletePaidPost(ctx context.Context, session domain.Session, sessionID string) (*domain.Job, error)
	CancelPaidPost(ctx context.Context, session domain.Session, sessionID string) error
}

// SessionResolver builds the per-request Session from verified token claims.
type SessionResolver interface {
	Resolve(ctx context.Context, userID, email, displayName string) (domain.Session, error)
}

// UpdateProfileCommand captures profile form input.
type UpdateProfileCommand struct {
	DisplayName      string
	Email            string
	Role             string
	CompanyName      string
	CompanyLocation  string
	CompanyPostcode  string
	ApplicationEmail string
	InstagramURL     string
	Password         string
	ConfirmPassword  string
}

// CheckoutCommand carries the client-supplied checkout options.
type CheckoutCommand struct {
	Title      string
	SuccessURL string
	CancelURL  string
	Currency   string
}
