// Package scheduler runs periodic admin jobs such as the pending-draft digest.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	adminapp "github.com/Stuart1162/fizzyjuice/internal/admin/application"
)

// Scheduler wraps robfig/cron.
type Scheduler struct {
	cron     *cron.Cron
	digest   adminapp.DigestService
	schedule string
	timeout  time.Duration
	logger   *log.Logger
}

// New returns nil when schedule is empty, which disables the digest.
func New(digest adminapp.DigestService, schedule string, timeout time.Duration, logger *log.Logger) *Scheduler {
	schedule = strings.TrimSpace(schedule)
	if schedule == "" || digest == nil {
		return nil
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLogger(cron.VerbosePrintfLogger(logger))),
		digest:   digest,
		schedule: schedule,
		timeout:  timeout,
		logger:   logger,
	}
}

// Start registers the digest and starts the cron loop.
func (s *Scheduler) Start() error {
	if s == nil {
		return nil
	}
	if _, err := s.cron.AddFunc(s.schedule, s.RunDigest); err != nil {
		return fmt.Errorf("cron.AddFunc(%q): %w", s.schedule, err)
	}
	s.cron.Start()
	s.logger.Printf("scheduler started: draft digest %s", s.schedule)
	return nil
}

// Stop waits for a running digest to finish.
func (s *Scheduler) Stop() {
	if s == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.logger.Println("scheduler stopped")
}

func (s *Scheduler) RunDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	count, err := s.digest.SendDraftDigest(ctx)
	if err != nil {
		s.logger.Printf("draft digest failed: %v", err)
		return
	}
	if count > 0 {
		s.logger.Printf("draft digest sent: %d draft(s)", count)
	}
}
