package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

const (
	defaultCheckoutTitle    = "Job Post Credit"
	defaultCheckoutCurrency = "gbp"
	checkoutSessionParam    = "{CHECKOUT_SESSION_ID}"
)

// PostingConfig holds the checkout defaults.
type PostingConfig struct {
	PublicOrigin string
	Currency     string
}

type postingService struct {
	deps    JobDeps
	pending PendingPostRepository
	gateway CheckoutGateway
	cfg     PostingConfig
}

// NewPostingService wires the paid posting flow. gateway may be nil when payments are not configured.
func NewPostingService(deps JobDeps, pending PendingPostRepository, gateway CheckoutGateway, cfg PostingConfig) PostingService {
	return &postingService{deps: deps, pending: pending, gateway: gateway, cfg: cfg}
}

// checkoutRequest fills in title, currency and redirect targets.
func (s *postingService) checkoutRequest(session domain.Session, cmd CheckoutCommand) domain.CheckoutRequest {
	origin := strings.TrimRight(strings.TrimSpace(s.cfg.PublicOrigin), "/")
	req := domain.CheckoutRequest{
		Title:      strings.TrimSpace(cmd.Title),
		SuccessURL: strings.TrimSpace(cmd.SuccessURL),
		CancelURL:  strings.TrimSpace(cmd.CancelURL),
		Currency:   strings.ToLower(strings.TrimSpace(cmd.Currency)),
		UserID:     session.UserID,
	}
	if req.Title == "" {
		req.Title = defaultCheckoutTitle
	}
	if req.Currency == "" {
		req.Currency = strings.ToLower(strings.TrimSpace(s.cfg.Currency))
	}
	if req.Currency == "" {
		req.Currency = defaultCheckoutCurrency
	}
	if req.SuccessURL == "" {
		req.SuccessURL = origin + "/post-job?paid=1&session_id=" + checkoutSessionParam
	}
	if req.CancelURL == "" {
		req.CancelURL = origin + "/post-job?paid=0"
	}
	return req
}

func (s *postingService) CreateCheckout(ctx context.Context, session domain.Session, cmd CheckoutCommand) (*domain.CheckoutSession, error) {
	if s.gateway == nil {
		return nil, ErrCheckoutUnavailable
	}
	checkout, err := s.gateway.CreateSession(ctx, s.checkoutRequest(session, cmd))
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return checkout, nil
}

// StartPaidPost validates the job up front so the poster never pays for a form that cannot be saved.
func (s *postingService) StartPaidPost(ctx context.Context, session domain.Session, job domain.Job, cmd CheckoutCommand) (*domain.CheckoutSession, error) {
	if !session.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	normalized, err := domain.NormalizeJob(job)
	if err != nil {
		return nil, err
	}
	if !session.IsAdmin() {
		normalized.WordOnTheStreet = ""
	}
	checkout, err := s.CreateCheckout(ctx, session, cmd)
	if err != nil {
		return nil, err
	}
	now := s.deps.now()
	post := &domain.PendingPost{
		SessionID: checkout.ID,
		UserID:    session.UserID,
		Job:       normalized,
		Status:    domain.PendingAwaitingPayment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.pending.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("store pending post: %w", err)
	}
	return checkout, nil
}

func (s *postingService) CompletePaidPost(ctx context.Context, session domain.Session, sessionID string) (*domain.Job, error) {
	post, err := s.ownedPost(ctx, session, sessionID)
	if err != nil {
		return nil, err
	}
	switch post.Status {
	case domain.PendingCreated:
		return s.alreadyCreated(ctx, post)
	case domain.PendingCancelled:
		return nil, fmt.Errorf("%w: checkout was cancelled", domain.ErrInvalidTransition)
	}

	if s.gateway == nil {
		return nil, ErrCheckoutUnavailable
	}
	checkout, err := s.gateway.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get checkout session: %w", err)
	}
	if !checkout.Paid {
		return nil, domain.ErrPaymentRequired
	}

	claimed, err := s.pending.Claim(ctx, sessionID, s.deps.now())
	if errors.Is(err, domain.ErrNotFound) {
		// 別リクエストが先に claim した。
		current, findErr := s.pending.Find(ctx, sessionID)
		if findErr != nil {
			return nil, findErr
		}
		return s.alreadyCreated(ctx, current)
	}
	if err != nil {
		return nil, err
	}

	created, err := s.deps.insert(ctx, claimed.Job, false, session.UserID)
	if err != nil {
		if releaseErr := s.pending.Release(ctx, sessionID); releaseErr != nil {
			s.deps.logf("pending post release failed session=%s: %v", sessionID, releaseErr)
		}
		return nil, err
	}
	if err := s.pending.AttachJob(ctx, sessionID, created.ID); err != nil {
		s.deps.logf("pending post attach failed session=%s job=%s: %v", sessionID, created.ID, err)
	}
	s.deps.publish(ctx, domain.EventPostedPaid, *created, session.UserID)
	return created, nil
}

func (s *postingService) CancelPaidPost(ctx context.Context, session domain.Session, sessionID string) error {
	post, err := s.ownedPost(ctx, session, sessionID)
	if err != nil {
		return err
	}
	switch post.Status {
	case domain.PendingCancelled:
		return nil
	case domain.PendingCreated:
		return fmt.Errorf("%w: job already posted", domain.ErrInvalidTransition)
	}
	return s.pending.Cancel(ctx, sessionID, s.deps.now())
}

func (s *postingService) ownedPost(ctx context.Context, session domain.Session, sessionID string) (*domain.PendingPost, error) {
	if !session.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	post, err := s.pending.Find(ctx, strings.TrimSpace(sessionID))
	if err != nil {
		return nil, err
	}
	if post.UserID != session.UserID {
		return nil, domain.ErrNotFound
	}
	return post, nil
}

// alreadyCreated は二重送信時に既存の求人を返す。
func (s *postingService) alreadyCreated(ctx context.Context, post *domain.PendingPost) (*domain.Job, error) {
	if post.Status != domain.PendingCreated || post.JobID == "" {
		return nil, fmt.Errorf("%w: checkout is still being processed", domain.ErrInvalidTransition)
	}
	return s.deps.Jobs.FindByID(ctx, post.JobID)
}
