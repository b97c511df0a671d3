package mail

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

const (
	kindUserCreated  = "user_created"
	kindDraftCreated = "draft_job_created"
	kindDraftDigest  = "draft_digest"
)

// Sender delivers one message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// FailureRecorder keeps an audit trail of failed sends.
type FailureRecorder interface {
	Record(ctx context.Context, kind, subject string, recipients []string, sendErr error) error
}

// Config holds the admin recipient list and the From header parts.
type Config struct {
	AdminEmails []string
	FromName    string
	FromEmail   string
}

// Notifier formats admin notification emails.
type Notifier struct {
	sender   Sender
	failures FailureRecorder
	cfg      Config
	logger   *log.Logger
	now      func() time.Time
}

func NewNotifier(sender Sender, failures FailureRecorder, cfg Config, logger *log.Logger) *Notifier {
	return &Notifier{sender: sender, failures: failures, cfg: cfg, logger: logger, now: time.Now}
}

func (n *Notifier) from() string {
	name := strings.TrimSpace(n.cfg.FromName)
	if name == "" {
		name = "Fizzy Juice"
	}
	email := strings.TrimSpace(n.cfg.FromEmail)
	if email == "" {
		email = "no-reply@fizzyjuice.uk"
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

func (n *Notifier) recipients() []string {
	out := make([]string, 0, len(n.cfg.AdminEmails))
	for _, email := range n.cfg.AdminEmails {
		if trimmed := strings.TrimSpace(email); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (n *Notifier) logf(format string, args ...any) {
	if n.logger != nil {
		n.logger.Printf(format, args...)
	}
}

// deliver sends once. Failures are logged and recorded, never returned to the triggering request.
func (n *Notifier) deliver(ctx context.Context, kind, subject, body string) error {
	to := n.recipients()
	if len(to) == 0 {
		n.logf("notification skipped kind=%s: no admin recipients configured", kind)
		return nil
	}
	if n.sender == nil {
		n.logf("notification skipped kind=%s: mail sender not configured", kind)
		return nil
	}
	err := n.sender.Send(ctx, Message{From: n.from(), To: to, Subject: subject, HTML: body})
	if errors.Is(err, ErrNotConfigured) {
		n.logf("notification skipped kind=%s: mail API key not configured", kind)
		return nil
	}
	if err == nil {
		return nil
	}
	n.logf("notification failed kind=%s subject=%q: %v", kind, subject, err)
	if n.failures != nil {
		if recErr := n.failures.Record(ctx, kind, subject, to, err); recErr != nil {
			n.logf("failed_notifications への保存に失敗: %v", recErr)
		}
	}
	return err
}

// UserCreated emails admins about a new account.
func (n *Notifier) UserCreated(ctx context.Context, profile domain.Profile) {
	subject, body := userCreatedEmail(profile, n.now().UTC())
	_ = n.deliver(ctx, kindUserCreated, subject, body)
}

// DraftJobCreated emails admins about a draft waiting for approval. Published jobs are ignored.
func (n *Notifier) DraftJobCreated(ctx context.Context, job domain.Job) {
	if !job.Draft {
		return
	}
	subject, body := draftJobEmail(job)
	_ = n.deliver(ctx, kindDraftCreated, subject, body)
}

// DraftDigest emails the list of drafts pending approval.
func (n *Notifier) DraftDigest(ctx context.Context, drafts []domain.Job) error {
	subject, body := draftDigestEmail(drafts)
	return n.deliver(ctx, kindDraftDigest, subject, body)
}

func orNone(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

type field struct {
	label string
	value string
}

func renderFields(heading string, fields []field) string {
	var b strings.Builder
	b.WriteString("<div>\n")
	b.WriteString("  <h2>" + html.EscapeString(heading) + "</h2>\n")
	for _, f := range fields {
		fmt.Fprintf(&b, "  <p><strong>%s:</strong> %s</p>\n", html.EscapeString(f.label), html.EscapeString(f.value))
	}
	b.WriteString("</div>\n")
	return b.String()
}

func userCreatedEmail(profile domain.Profile, at time.Time) (string, string) {
	subject := "New account: " + orNone(profile.Email, profile.UserID)
	createdAt := at
	if profile.CreatedAt != nil {
		createdAt = profile.CreatedAt.UTC()
	}
	body := renderFields("New account created", []field{
		{"Email", orNone(profile.Email, "(none)")},
		{"Display Name", orNone(profile.DisplayName, "(none)")},
		{"Role", orNone(string(profile.Role), "(unknown)")},
		{"UID", profile.UserID},
		{"Created At", createdAt.Format(time.RFC3339)},
	})
	return subject, body
}

func draftJobEmail(job domain.Job) (string, string) {
	title := orNone(job.Title, "(no title)")
	company := orNone(job.Company, "(no company)")
	subject := fmt.Sprintf("New draft job: %s @ %s", title, company)
	body := renderFields("New draft job created", []field{
		{"Title", title},
		{"Company", company},
		{"Location", orNone(job.Location, "(no location)")},
		{"Ref", orNone(job.Ref, job.ID)},
		{"Created By UID", orNone(job.CreatedBy, "(unknown)")},
		{"Contact Email", orNone(job.ContactEmail, "(none)")},
		{"Draft", fmt.Sprintf("%t", job.Draft)},
	})
	return subject, body
}

func draftDigestEmail(drafts []domain.Job) (string, string) {
	subject := fmt.Sprintf("%d draft job(s) waiting for approval", len(drafts))
	var b strings.Builder
	b.WriteString("<div>\n")
	b.WriteString("  <h2>Drafts waiting for approval</h2>\n  <ul>\n")
	for _, job := range drafts {
		fmt.Fprintf(&b, "    <li>#%s %s @ %s (%s)</li>\n",
			html.EscapeString(orNone(job.Ref, job.ID)),
			html.EscapeString(orNone(job.Title, "(no title)")),
			html.EscapeString(orNone(job.Company, "(no company)")),
			html.EscapeString(orNone(job.Location, "(no location)")),
		)
	}
	b.WriteString("  </ul>\n</div>\n")
	return subject, b.String()
}
