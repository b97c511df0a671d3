package application

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

// JobDeps bundles the collaborators of the job services.
type JobDeps struct {
	Jobs          JobRepository
	Profiles      ProfileRepository
	SavedJobs     SavedJobRepository
	Metrics       MetricsRepository
	Events        EventPublisher
	Notifier      Notifier
	Refs          *domain.RefGenerator
	Logger        *log.Logger
	ArchiveDays   int
	Now           func() time.Time
	NotifyTimeout time.Duration
}

func (d JobDeps) now() time.Time {
	if d.Now != nil {
		return d.Now().UTC()
	}
	return time.Now().UTC()
}

func (d JobDeps) logf(format string, args ...any) {
	if d.Logger != nil {
		d.Logger.Printf(format, args...)
	}
}

// publish は書き込み成功後にイベントを配信する。失敗はログのみ。
func (d JobDeps) publish(ctx context.Context, eventType domain.JobEventType, job domain.Job, actor string) {
	if d.Events == nil {
		return
	}
	event := domain.JobEvent{
		ID:    uuid.NewString(),
		Type:  eventType,
		JobID: job.ID,
		Ref:   job.Ref,
		Actor: actor,
		At:    d.now(),
	}
	if err := d.Events.Publish(ctx, event); err != nil {
		d.logf("job event publish failed type=%s job=%s: %v", eventType, job.ID, err)
	}
}

// notifyDraft runs detached from the request so a slow mail provider never blocks the response.
func (d JobDeps) notifyDraft(job domain.Job) {
	if d.Notifier == nil || !job.Draft {
		return
	}
	timeout := d.NotifyTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		d.Notifier.DraftJobCreated(ctx, job)
	}()
}

// insert assigns a ref code and timestamps, then writes the job.
func (d JobDeps) insert(ctx context.Context, job domain.Job, draft bool, createdBy string) (*domain.Job, error) {
	ref := ""
	if d.Refs != nil {
		var err error
		ref, err = d.Refs.Next(ctx)
		if err != nil {
			return nil, err
		}
	}
	now := d.now()
	created := job.Clone()
	created.ID = ""
	created.Draft = draft
	created.CreatedBy = createdBy
	created.Ref = ref
	created.CreatedAt = &now
	created.UpdatedAt = nil
	if err := d.Jobs.Create(ctx, &created); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return &created, nil
}

// JobCascade removes a job together with the documents keyed by its id.
// 保存済み求人とメトリクスの削除失敗は求人削除自体を失敗扱いにしない。
type JobCascade struct {
	Jobs interface {
		Delete(ctx context.Context, id string) error
	}
	SavedJobs interface {
		DeleteByJob(ctx context.Context, jobID string) error
	}
	Metrics interface {
		Delete(ctx context.Context, jobID string) error
	}
	Logger *log.Logger
}

// Delete is shared by the owner and admin delete paths.
func (c JobCascade) Delete(ctx context.Context, id string) error {
	if err := c.Jobs.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if c.SavedJobs != nil {
		if err := c.SavedJobs.DeleteByJob(ctx, id); err != nil && c.Logger != nil {
			c.Logger.Printf("saved job cascade failed job=%s: %v", id, err)
		}
	}
	if c.Metrics != nil {
		if err := c.Metrics.Delete(ctx, id); err != nil && c.Logger != nil {
			c.Logger.Printf("metrics cascade failed job=%s: %v", id, err)
		}
	}
	return nil
}

func (d JobDeps) cascade() JobCascade {
	c := JobCascade{Jobs: d.Jobs, Logger: d.Logger}
	if d.SavedJobs != nil {
		c.SavedJobs = d.SavedJobs
	}
	if d.Metrics != nil {
		c.Metrics = d.Metrics
	}
	return c
}

type jobQueryService struct {
	deps JobDeps
}

// NewJobQueryService creates the read side of jobs.
func NewJobQueryService(deps JobDeps) JobQueryService {
	return &jobQueryService{deps: deps}
}

func (s *jobQueryService) List(ctx context.Context, session domain.Session, filter domain.Filter) ([]domain.Job, error) {
	query := JobQuery{}
	if !session.Authenticated() {
		published := false
		query.Draft = &published
	}
	jobs, err := s.deps.Jobs.List(ctx, query)
	if err != nil {
		return nil, err
	}
	visible := domain.VisibleTo(jobs, session, s.deps.now(), s.deps.ArchiveDays)
	result := domain.FilterJobs(visible, filter)
	domain.SortByRecency(result)
	return result, nil
}

func (s *jobQueryService) Detail(ctx context.Context, session domain.Session, id string) (*domain.Job, error) {
	job, err := s.deps.Jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.visible(job, session)
}

func (s *jobQueryService) DetailByRef(ctx context.Context, session domain.Session, ref string) (*domain.Job, error) {
	job, err := s.deps.Jobs.FindByRef(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.visible(job, session)
}

// visible hides drafts and archived jobs as not found, so their existence is not leaked.
func (s *jobQueryService) visible(job *domain.Job, session domain.Session) (*domain.Job, error) {
	if !domain.CanView(*job, session, s.deps.now(), s.deps.ArchiveDays) {
		return nil, domain.ErrNotFound
	}
	return job, nil
}

func (s *jobQueryService) Mine(ctx context.Context, session domain.Session) ([]domain.Job, error) {
	if !session.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	jobs, err := s.deps.Jobs.List(ctx, JobQuery{CreatedBy: session.UserID})
	if err != nil {
		return nil, err
	}
	domain.SortByRecency(jobs)
	return jobs, nil
}

func (s *jobQueryService) Personalized(ctx context.Context, session domain.Session) ([]domain.RankedJob, error) {
	if !session.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	prefs, err := s.deps.Profiles.FindPreferences(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if prefs == nil || !prefs.HasAny() {
		return []domain.RankedJob{}, nil
	}
	jobs, err := s.deps.Jobs.List(ctx, JobQuery{})
	if err != nil {
		return nil, err
	}
	visible := domain.VisibleTo(jobs, session, s.deps.now(), s.deps.ArchiveDays)
	return domain.Rank(visible, *prefs), nil
}

type jobCommandService struct {
	deps JobDeps
}

// NewJobCommandService creates the write side of jobs.
func NewJobCommandService(deps JobDeps) JobCommandService {
	return &jobCommandService{deps: deps}
}

func (s *jobCommandService) Create(ctx context.Context, session domain.Session, job domain.Job) (*domain.Job, error) {
	draft, err := domain.InitialDraftState(session)
	if err != nil {
		return nil, err
	}
	normalized, err := domain.NormalizeJob(job)
	if err != nil {
		return nil, err
	}
	if !session.IsAdmin() {
		normalized.WordOnTheStreet = ""
	}
	created, err := s.deps.insert(ctx, normalized, draft, session.UserID)
	if err != nil {
		return nil, err
	}
	s.deps.publish(ctx, domain.EventCreated, *created, session.UserID)
	s.deps.notifyDraft(*created)
	return created, nil
}

func (s *jobCommandService) Edit(ctx context.Context, session domain.Session, id string, job domain.Job) (*domain.Job, error) {
	current, err := s.deps.Jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckTransition(domain.ActionEdit, *current, session); err != nil {
		return nil, err
	}
	normalized, err := domain.NormalizeEditedJob(job, *current)
	if err != nil {
		return nil, err
	}
	if !session.IsAdmin() {
		normalized.WordOnTheStreet = current.WordOnTheStreet
	}
	updated := domain.ApplyEdit(*current, normalized, s.deps.now())
	if err := s.deps.Jobs.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	s.deps.publish(ctx, domain.EventEdited, updated, session.UserID)
	return s.deps.Jobs.FindByID(ctx, id)
}

func (s *jobCommandService) Delete(ctx context.Context, session domain.Session, id string) error {
	current, err := s.deps.Jobs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := domain.CheckTransition(domain.ActionDelete, *current, session); err != nil {
		return err
	}
	if err := s.deps.cascade().Delete(ctx, current.ID); err != nil {
		return err
	}
	s.deps.publish(ctx, domain.EventDeleted, *current, session.UserID)
	return nil
}
