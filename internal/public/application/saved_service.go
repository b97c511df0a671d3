package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

type savedJobService struct {
	jobs        JobRepository
	saved       SavedJobRepository
	metrics     MetricsRepository
	logger      *log.Logger
	now         func() time.Time
	archiveDays int
}

// NewSavedJobService wires the saved list. now may be nil.
func NewSavedJobService(jobs JobRepository, saved SavedJobRepository, metrics MetricsRepository, logger *log.Logger, now func() time.Time, archiveDays int) SavedJobService {
	if now == nil {
		now = time.Now
	}
	return &savedJobService{jobs: jobs, saved: saved, metrics: metrics, logger: logger, now: now, archiveDays: archiveDays}
}

// visibleJob loads a job the viewer may see. Hidden drafts and archived jobs read as not found.
func visibleJob(ctx context.Context, jobs JobRepository, session domain.Session, id string, now time.Time, archiveDays int) (*domain.Job, error) {
	job, err := jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanView(*job, session, now, archiveDays) {
		return nil, domain.ErrNotFound
	}
	return job, nil
}

func (s *savedJobService) List(ctx context.Context, session domain.Session) ([]domain.SavedJob, error) {
	if !session.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	items, err := s.saved.List(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		_, err := s.jobs.FindByID(ctx, items[i].JobID)
		switch {
		case err == nil:
			items[i].Exists = true
		case errors.Is(err, domain.ErrNotFound):
			items[i].Exists = false
		default:
			return nil, err
		}
	}
	return items, nil
}

func (s *savedJobService) Save(ctx context.Context, session domain.Session, jobID string) (*domain.SavedJob, error) {
	if !session.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	job, err := visibleJob(ctx, s.jobs, session, jobID, s.now().UTC(), s.archiveDays)
	if err != nil {
		return nil, err
	}
	current, err := s.find(ctx, session.UserID, jobID)
	if err != nil {
		return nil, err
	}

	snapshot := domain.SnapshotOf(session.UserID, *job)
	if err := s.saved.Save(ctx, snapshot, s.now().UTC()); err != nil {
		return nil, fmt.Errorf("save job: %w", err)
	}
	if current == nil || !current.Saved {
		s.bump(ctx, jobID, domain.MetricSaves, 1)
	}
	return s.saved.Find(ctx, session.UserID, jobID)
}

func (s *savedJobService) Unsave(ctx context.Context, session domain.Session, jobID string) error {
	if !session.Authenticated() {
		return domain.ErrUnauthenticated
	}
	removed, err := s.saved.Remove(ctx, session.UserID, jobID)
	if err != nil {
		return fmt.Errorf("unsave job: %w", err)
	}
	if removed {
		s.bump(ctx, jobID, domain.MetricSaves, -1)
	}
	return nil
}

func (s *savedJobService) Toggle(ctx context.Context, session domain.Session, jobID string) (bool, error) {
	if !session.Authenticated() {
		return false, domain.ErrUnauthenticated
	}
	current, err := s.find(ctx, session.UserID, jobID)
	if err != nil {
		return false, err
	}
	if current != nil && current.Saved {
		return false, s.Unsave(ctx, session, jobID)
	}
	if _, err := s.Save(ctx, session, jobID); err != nil {
		return false, err
	}
	return true, nil
}

// SetApplied flips the applied flag of an existing saved entry.
func (s *savedJobService) SetApplied(ctx context.Context, session domain.Session, jobID string, applied bool) (*domain.SavedJob, error) {
	if !session.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	changed, err := s.saved.SetApplied(ctx, session.UserID, jobID, applied, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if changed && applied {
		s.bump(ctx, jobID, domain.MetricApplies, 1)
	}
	return s.saved.Find(ctx, session.UserID, jobID)
}

func (s *savedJobService) find(ctx context.Context, userID, jobID string) (*domain.SavedJob, error) {
	current, err := s.saved.Find(ctx, userID, jobID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return current, err
}

// bump はカウンタ更新失敗をログに残すだけで呼び出し元へは返さない。
func (s *savedJobService) bump(ctx context.Context, jobID string, kind domain.MetricKind, delta int64) {
	if s.metrics == nil {
		return
	}
	if err := s.metrics.Increment(ctx, jobID, kind, delta); err != nil && s.logger != nil {
		s.logger.Printf("metrics increment failed job=%s kind=%s delta=%d: %v", jobID, kind, delta, err)
	}
}

type metricsService struct {
	jobs        JobRepository
	metrics     MetricsRepository
	now         func() time.Time
	archiveDays int
}

// NewMetricsService records views and applies for jobs the viewer can see.
func NewMetricsService(jobs JobRepository, metrics MetricsRepository, now func() time.Time, archiveDays int) MetricsService {
	if now == nil {
		now = time.Now
	}
	return &metricsService{jobs: jobs, metrics: metrics, now: now, archiveDays: archiveDays}
}

func (s *metricsService) Record(ctx context.Context, session domain.Session, jobID string, kind domain.MetricKind) error {
	switch kind {
	case domain.MetricViews, domain.MetricApplies:
	default:
		return domain.Invalidf("unsupported metric %q", kind)
	}
	if _, err := visibleJob(ctx, s.jobs, session, jobID, s.now().UTC(), s.archiveDays); err != nil {
		return err
	}
	return s.metrics.Increment(ctx, jobID, kind, 1)
}
