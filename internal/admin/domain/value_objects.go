package domain

import (
	"fmt"
	"strings"
	"time"

	publicdomain "github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

// JobView selects one of the admin job tables.
type JobView string

const (
	JobViewAll      JobView = "all"
	JobViewDrafts   JobView = "drafts"
	JobViewArchived JobView = "archived"
	JobViewActive   JobView = "active"
)

func NewJobView(value string) (JobView, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return JobViewAll, nil
	}
	switch v := JobView(trimmed); v {
	case JobViewAll, JobViewDrafts, JobViewArchived, JobViewActive:
		return v, nil
	}
	return "", fmt.Errorf("invalid job view: %s", trimmed)
}

// Includes は job が view に含まれるかを判定する。
func (v JobView) Includes(job publicdomain.Job, now time.Time, thresholdDays int) bool {
	status := publicdomain.StatusOf(job, now, thresholdDays)
	switch v {
	case JobViewDrafts:
		return status == publicdomain.StatusDraft
	case JobViewArchived:
		return status == publicdomain.StatusArchived
	case JobViewActive:
		return status == publicdomain.StatusPublished
	}
	return true
}

// RoleFilter narrows the admin user list. The zero value matches every role.
type RoleFilter string

func NewRoleFilter(value string) (RoleFilter, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || strings.EqualFold(trimmed, "all") {
		return "", nil
	}
	role, err := publicdomain.ParseRole(trimmed)
	if err != nil {
		return "", err
	}
	return RoleFilter(role), nil
}

func (f RoleFilter) Matches(role publicdomain.Role) bool {
	return f == "" || publicdomain.Role(f) == role
}

func (f RoleFilter) String() string {
	if f == "" {
		return "all"
	}
	return string(f)
}
