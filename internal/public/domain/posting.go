package domain

import "time"

// PendingPostStatus tracks a paid posting across the checkout redirect.
type PendingPostStatus string

const (
	PendingAwaitingPayment PendingPostStatus = "awaiting_payment"
	PendingCreated         PendingPostStatus = "created"
	PendingCancelled       PendingPostStatus = "cancelled"
)

// PendingPost is the job draft held server-side while the user is at the hosted checkout.
type PendingPost struct {
	SessionID string
	UserID    string
	Job       Job
	Status    PendingPostStatus
	JobID     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CheckoutRequest describes a fixed-price single line item checkout.
type CheckoutRequest struct {
	Title      string
	SuccessURL string
	CancelURL  string
	Currency   string
	UserID     string
}

// CheckoutSession is the hosted checkout returned by the payment processor.
type CheckoutSession struct {
	ID   string
	URL  string
	Paid bool
}

// JobEventType names lifecycle events published after successful writes.
type JobEventType string

const (
	EventCreated    JobEventType = "created"
	EventEdited     JobEventType = "edited"
	EventApproved   JobEventType = "approved"
	EventRestored   JobEventType = "restored"
	EventDeleted    JobEventType = "deleted"
	EventPostedPaid JobEventType = "posted_paid"
)

// JobEvent is the payload published on the job events channel.
type JobEvent struct {
	ID    string       `json:"id"`
	Type  JobEventType `json:"type"`
	JobID string       `json:"jobId"`
	Ref   string       `json:"ref,omitempty"`
	Actor string       `json:"actor,omitempty"`
	At    time.Time    `json:"at"`
}
