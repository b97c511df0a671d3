package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	admindomain "github.com/Stuart1162/fizzyjuice/internal/admin/domain"
	publicdomain "github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

const metricsFanOut = 8

type reportService struct {
	jobs        JobRepository
	metrics     MetricsRepository
	archiveDays int
	now         func() time.Time
}

func NewReportService(jobs JobRepository, metrics MetricsRepository, archiveDays int, now func() time.Time) ReportService {
	if now == nil {
		now = time.Now
	}
	return &reportService{jobs: jobs, metrics: metrics, archiveDays: archiveDays, now: now}
}

// ActiveJobs returns live jobs, newest first, each with its counters.
func (s *reportService) ActiveJobs(ctx context.Context, session publicdomain.Session) ([]admindomain.JobReport, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}
	published := false
	jobs, err := s.jobs.FindAll(ctx, &published)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	active := make([]publicdomain.Job, 0, len(jobs))
	for _, job := range jobs {
		if admindomain.JobViewActive.Includes(job, now, s.archiveDays) {
			active = append(active, job)
		}
	}
	publicdomain.SortByRecency(active)

	var (
		mu      sync.Mutex
		metrics = make(map[string]publicdomain.JobMetrics, len(active))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(metricsFanOut)
	for _, job := range active {
		jobID := job.ID
		g.Go(func() error {
			m, err := s.metrics.Find(gctx, jobID)
			if errors.Is(err, publicdomain.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			mu.Lock()
			metrics[jobID] = *m
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return admindomain.MergeMetrics(active, metrics), nil
}
