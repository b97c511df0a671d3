package scheduler_test

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/Stuart1162/fizzyjuice/internal/scheduler"
)

type countingDigest struct {
	calls int
	err   error
}

func (d *countingDigest) SendDraftDigest(context.Context) (int, error) {
	d.calls++
	return 2, d.err
}

var quiet = log.New(io.Discard, "", 0)

func TestNew_EmptySpecDisables(t *testing.T) {
	s := scheduler.New(&countingDigest{}, "  ", 0, quiet)
	if s != nil {
		t.Fatal("empty schedule should disable the scheduler")
	}
	if err := s.Start(); err != nil {
		t.Errorf("nil scheduler Start = %v", err)
	}
	s.Stop()
}

func TestStart_RejectsBadSchedule(t *testing.T) {
	s := scheduler.New(&countingDigest{}, "every tuesday", 0, quiet)
	if err := s.Start(); err == nil {
		t.Error("expected cron parse error")
	}
}

func TestRunDigest(t *testing.T) {
	d := &countingDigest{err: errors.New("mail down")}
	s := scheduler.New(d, "@daily", 0, quiet)
	s.RunDigest()
	if d.calls != 1 {
		t.Errorf("calls = %d, want 1", d.calls)
	}
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	s.Stop()
}
