package application

import (
	"context"
	"log"

	publicdomain "github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

// DigestSender emails admins the drafts waiting for approval.
type DigestSender interface {
	DraftDigest(ctx context.Context, drafts []publicdomain.Job) error
}

// DigestService runs the scheduled pending-draft digest.
type DigestService interface {
	SendDraftDigest(ctx context.Context) (int, error)
}

type digestService struct {
	jobs   JobRepository
	sender DigestSender
	logger *log.Logger
}

func NewDigestService(jobs JobRepository, sender DigestSender, logger *log.Logger) DigestService {
	return &digestService{jobs: jobs, sender: sender, logger: logger}
}

// SendDraftDigest returns the number of drafts reported. No mail goes out when there are none.
func (s *digestService) SendDraftDigest(ctx context.Context) (int, error) {
	draft := true
	drafts, err := s.jobs.FindAll(ctx, &draft)
	if err != nil {
		return 0, err
	}
	if len(drafts) == 0 {
		if s.logger != nil {
			s.logger.Printf("draft digest: nothing pending")
		}
		return 0, nil
	}
	publicdomain.SortByRecency(drafts)
	if err := s.sender.DraftDigest(ctx, drafts); err != nil {
		return 0, err
	}
	return len(drafts), nil
}
