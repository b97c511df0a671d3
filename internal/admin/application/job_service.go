package application

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	admindomain "github.com/Stuart1162/fizzyjuice/internal/admin/domain"
	publicapp "github.com/Stuart1162/fizzyjuice/internal/public/application"
	publicdomain "github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

// JobDeps bundles the collaborators of the admin job service.
type JobDeps struct {
	Jobs        JobRepository
	Metrics     MetricsRepository
	SavedJobs   SavedJobCleaner
	Events      EventPublisher
	Logger      *log.Logger
	ArchiveDays int
	Now         func() time.Time
}

type jobService struct {
	deps JobDeps
}

func NewJobService(deps JobDeps) JobService {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &jobService{deps: deps}
}

func (s *jobService) now() time.Time {
	return s.deps.Now().UTC()
}

func (s *jobService) List(ctx context.Context, session publicdomain.Session, view admindomain.JobView) ([]publicdomain.Job, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}
	var draft *bool
	switch view {
	case admindomain.JobViewDrafts:
		yes := true
		draft = &yes
	case admindomain.JobViewArchived, admindomain.JobViewActive:
		no := false
		draft = &no
	}
	jobs, err := s.deps.Jobs.FindAll(ctx, draft)
	if err != nil {
		return nil, err
	}
	now := s.now()
	result := make([]publicdomain.Job, 0, len(jobs))
	for _, job := range jobs {
		if view.Includes(job, now, s.deps.ArchiveDays) {
			result = append(result, job)
		}
	}
	publicdomain.SortByRecency(result)
	return result, nil
}

func (s *jobService) Approve(ctx context.Context, session publicdomain.Session, id string) (*publicdomain.Job, error) {
	return s.transition(ctx, session, id, publicdomain.ActionApprove, func(job publicdomain.Job) publicdomain.Job {
		return publicdomain.Approve(job)
	})
}

func (s *jobService) Restore(ctx context.Context, session publicdomain.Session, id string) (*publicdomain.Job, error) {
	return s.transition(ctx, session, id, publicdomain.ActionRestore, func(job publicdomain.Job) publicdomain.Job {
		return publicdomain.Restore(job, s.now())
	})
}

func (s *jobService) transition(ctx context.Context, session publicdomain.Session, id string, action publicdomain.Action, apply func(publicdomain.Job) publicdomain.Job) (*publicdomain.Job, error) {
	current, err := s.deps.Jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := publicdomain.CheckTransition(action, *current, session); err != nil {
		return nil, err
	}
	next := apply(*current)
	if err := s.deps.Jobs.Update(ctx, &next); err != nil {
		return nil, fmt.Errorf("%s job: %w", action, err)
	}
	if s.deps.Logger != nil {
		s.deps.Logger.Printf("job %s id=%s ref=%s by=%s", action, next.ID, next.Ref, session.UserID)
	}

	eventType := publicdomain.EventApproved
	if action == publicdomain.ActionRestore {
		eventType = publicdomain.EventRestored
	}
	s.publish(ctx, eventType, next, session.UserID)
	return s.deps.Jobs.FindByID(ctx, id)
}

func (s *jobService) Delete(ctx context.Context, session publicdomain.Session, id string) error {
	if err := requireAdmin(session); err != nil {
		return err
	}
	current, err := s.deps.Jobs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := publicdomain.CheckTransition(publicdomain.ActionDelete, *current, session); err != nil {
		return err
	}
	cascade := publicapp.JobCascade{Jobs: s.deps.Jobs, Logger: s.deps.Logger}
	if s.deps.SavedJobs != nil {
		cascade.SavedJobs = s.deps.SavedJobs
	}
	if s.deps.Metrics != nil {
		cascade.Metrics = s.deps.Metrics
	}
	if err := cascade.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, publicdomain.EventDeleted, *current, session.UserID)
	return nil
}

func (s *jobService) publish(ctx context.Context, eventType publicdomain.JobEventType, job publicdomain.Job, actor string) {
	if s.deps.Events == nil {
		return
	}
	event := publicdomain.JobEvent{ID: uuid.NewString(), Type: eventType, JobID: job.ID, Ref: job.Ref, Actor: actor, At: s.now()}
	if err := s.deps.Events.Publish(ctx, event); err != nil && s.deps.Logger != nil {
		s.deps.Logger.Printf("job event publish failed type=%s job=%s: %v", eventType, job.ID, err)
	}
}
