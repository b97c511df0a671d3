package domain

import (
	"fmt"
	"time"
)

// Action is a role-gated job mutation.
//
//	create ──► draft ──approve──► published ──(14 days)──► archived
//	                                  ▲                       │
//	                                  └────────restore────────┘
//
// delete is terminal from any state. edit never changes draft.
type Action string

const (
	ActionApprove Action = "approve"
	ActionRestore Action = "restore"
	ActionEdit    Action = "edit"
	ActionDelete  Action = "delete"
)

// ParseAction converts a raw string to an Action.
func ParseAction(s string) (Action, error) {
	a := Action(s)
	switch a {
	case ActionApprove, ActionRestore, ActionEdit, ActionDelete:
		return a, nil
	}
	return "", fmt.Errorf("unknown job action %q", s)
}

// InitialDraftState decides the draft flag of a directly created job.
// 管理者は即公開、employer は承認待ち、それ以外は決済を経由する必要がある。
func InitialDraftState(session Session) (bool, error) {
	if !session.Authenticated() {
		return false, ErrUnauthenticated
	}
	switch {
	case session.IsAdmin():
		return false, nil
	case session.Role == RoleEmployer:
		return true, nil
	default:
		return false, ErrPaymentRequired
	}
}

// BypassesPayment reports whether the viewer may create jobs without checkout.
func BypassesPayment(session Session) bool {
	_, err := InitialDraftState(session)
	return err == nil
}

// CheckTransition validates that session may apply action to job.
func CheckTransition(action Action, job Job, session Session) error {
	if !session.Authenticated() {
		return ErrUnauthenticated
	}
	switch action {
	case ActionApprove:
		if !session.IsAdmin() {
			return ErrForbidden
		}
		if !job.Draft {
			return fmt.Errorf("%w: job %s is already published", ErrInvalidTransition, job.ID)
		}
	case ActionRestore:
		if !session.IsAdmin() {
			return ErrForbidden
		}
		if job.Draft {
			return fmt.Errorf("%w: job %s is a draft", ErrInvalidTransition, job.ID)
		}
	case ActionEdit, ActionDelete:
		if !session.IsAdmin() && !session.Owns(job) {
			return ErrForbidden
		}
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, action)
	}
	return nil
}

// Approve publishes a draft. No other field changes.
func Approve(job Job) Job {
	next := job.Clone()
	next.Draft = false
	return next
}

// Restore bumps updatedAt so the archival window restarts. Idempotent.
func Restore(job Job, now time.Time) Job {
	next := job.Clone()
	t := now
	next.UpdatedAt = &t
	return next
}

// ApplyEdit copies editable content from edit onto job, keeping identity and lifecycle fields.
func ApplyEdit(job Job, edit Job, now time.Time) Job {
	next := edit.Clone()
	next.ID = job.ID
	next.Draft = job.Draft
	next.CreatedBy = job.CreatedBy
	next.Ref = job.Ref
	next.CreatedAt = job.CreatedAt
	t := now
	next.UpdatedAt = &t
	return next
}
