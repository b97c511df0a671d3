package stripe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	stripego "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

// DefaultUnitAmount is the job post price in minor units (£10).
const DefaultUnitAmount int64 = 1000

// Config configures the hosted checkout gateway.
type Config struct {
	SecretKey  string
	UnitAmount int64
	// BackendURL overrides the API host. Tests only.
	BackendURL string
}

// Gateway creates Stripe Checkout sessions for job posts.
type Gateway struct {
	api        *client.API
	unitAmount int64
}

func NewGateway(cfg Config) (*Gateway, error) {
	key := strings.TrimSpace(cfg.SecretKey)
	if key == "" {
		return nil, errors.New("stripe secret key is required")
	}
	var backends *stripego.Backends
	if cfg.BackendURL != "" {
		backends = &stripego.Backends{
			API: stripego.GetBackendWithConfig(stripego.APIBackend, &stripego.BackendConfig{
				URL:               stripego.String(cfg.BackendURL),
				MaxNetworkRetries: stripego.Int64(0),
				LeveledLogger:     &stripego.LeveledLogger{Level: stripego.LevelError},
			}),
		}
	}
	api := &client.API{}
	api.Init(key, backends)

	amount := cfg.UnitAmount
	if amount <= 0 {
		amount = DefaultUnitAmount
	}
	return &Gateway{api: api, unitAmount: amount}, nil
}

// CreateSession は 1 明細・数量 1 の決済セッションを作る。
func (g *Gateway) CreateSession(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutSession, error) {
	params := &stripego.CheckoutSessionParams{
		Mode:       stripego.String(string(stripego.CheckoutSessionModePayment)),
		SuccessURL: stripego.String(req.SuccessURL),
		CancelURL:  stripego.String(req.CancelURL),
		LineItems: []*stripego.CheckoutSessionLineItemParams{{
			PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
				Currency: stripego.String(req.Currency),
				ProductData: &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripego.String(req.Title),
				},
				UnitAmount: stripego.Int64(g.unitAmount),
			},
			Quantity: stripego.Int64(1),
		}},
	}
	if req.UserID != "" {
		params.ClientReferenceID = stripego.String(req.UserID)
	}
	params.AddMetadata("kind", "job_post")
	params.SetIdempotencyKey(uuid.NewString())
	params.Context = ctx

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session: %w", err)
	}
	return mapSession(sess), nil
}

func (g *Gateway) GetSession(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	params := &stripego.CheckoutSessionParams{}
	params.Context = ctx
	sess, err := g.api.CheckoutSessions.Get(id, params)
	if err != nil {
		var stripeErr *stripego.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == 404 {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("stripe checkout session %s: %w", id, err)
	}
	return mapSession(sess), nil
}

func mapSession(sess *stripego.CheckoutSession) *domain.CheckoutSession {
	return &domain.CheckoutSession{
		ID:   sess.ID,
		URL:  sess.URL,
		Paid: sess.PaymentStatus == stripego.CheckoutSessionPaymentStatusPaid,
	}
}
