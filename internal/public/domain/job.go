package domain

import (
	"strings"
	"time"
)

// Job represents a job posting as stored in the jobs collection.
type Job struct {
	ID               string
	Title            string
	Company          string
	Location         string
	Postcode         string
	Description      string
	JobType          string
	Salary           string
	Roles            []string
	Shifts           []string
	CompanyStrengths []string
	WordOnTheStreet  string
	WorkArrangement  string
	Skills           []string
	Requirements     []string
	ApplyDisplay     string
	ContactEmail     string
	ApplicationURL   string
	SocialURL        string
	Draft            bool
	CreatedBy        string
	Ref              string
	CreatedAt        *time.Time
	UpdatedAt        *time.Time
}

// ActivityTime は掲載期限の判定に使う基準時刻 (createdAt と updatedAt の新しい方)。
// どちらも無い場合は false を返す。
func (j Job) ActivityTime() (time.Time, bool) {
	var ref time.Time
	if j.CreatedAt != nil && !j.CreatedAt.IsZero() {
		ref = *j.CreatedAt
	}
	if j.UpdatedAt != nil && j.UpdatedAt.After(ref) {
		ref = *j.UpdatedAt
	}
	return ref, !ref.IsZero()
}

// RecencyTime returns createdAt, falling back to updatedAt. Zero when neither is set.
func (j Job) RecencyTime() time.Time {
	if j.CreatedAt != nil && !j.CreatedAt.IsZero() {
		return *j.CreatedAt
	}
	if j.UpdatedAt != nil {
		return *j.UpdatedAt
	}
	return time.Time{}
}

// MissingRequired lists required content fields that are blank.
func (j Job) MissingRequired() []string {
	missing := make([]string, 0)
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	check("title", j.Title)
	check("company", j.Company)
	check("location", j.Location)
	check("description", j.Description)
	check("contactEmail", j.ContactEmail)
	return missing
}

// Clone returns a deep copy so callers can mutate slices safely.
func (j Job) Clone() Job {
	c := j
	c.Roles = append([]string(nil), j.Roles...)
	c.Shifts = append([]string(nil), j.Shifts...)
	c.CompanyStrengths = append([]string(nil), j.CompanyStrengths...)
	c.Skills = append([]string(nil), j.Skills...)
	c.Requirements = append([]string(nil), j.Requirements...)
	if j.CreatedAt != nil {
		t := *j.CreatedAt
		c.CreatedAt = &t
	}
	if j.UpdatedAt != nil {
		t := *j.UpdatedAt
		c.UpdatedAt = &t
	}
	return c
}

// Status is the presentation state of a job. Archived is derived, never stored.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// StatusOf derives the lifecycle state at now.
func StatusOf(job Job, now time.Time, thresholdDays int) Status {
	if job.Draft {
		return StatusDraft
	}
	if IsArchived(job, now, thresholdDays) {
		return StatusArchived
	}
	return StatusPublished
}
