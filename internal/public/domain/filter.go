package domain

import "strings"

// Filter expresses the client-supplied listing criteria.
// カテゴリ間は AND、Roles/Shifts のカテゴリ内は OR で評価する。
type Filter struct {
	Query         string
	Location      string
	Roles         []string
	ContractTypes []string
	Shifts        []string
}

// IsZero reports whether the filter accepts everything.
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Query) == "" &&
		strings.TrimSpace(f.Location) == "" &&
		len(f.Roles) == 0 &&
		len(f.ContractTypes) == 0 &&
		len(f.Shifts) == 0
}

// Matches evaluates the filter against one job.
func (f Filter) Matches(job Job) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(SearchText(job), q) {
			return false
		}
	}
	if !matchesLocation(job, f.Location) {
		return false
	}
	if !intersects(job.Roles, f.Roles) {
		return false
	}
	if !containsFold(f.ContractTypes, job.JobType) {
		return false
	}
	return intersects(job.Shifts, f.Shifts)
}

// FilterJobs returns the jobs matching f in their original order.
func FilterJobs(jobs []Job, f Filter) []Job {
	result := make([]Job, 0, len(jobs))
	for _, job := range jobs {
		if f.Matches(job) {
			result = append(result, job)
		}
	}
	return result
}

// SearchText builds the lower-cased haystack used by free-text search.
func SearchText(job Job) string {
	parts := []string{
		job.Title,
		job.Company,
		job.Location,
		job.Description,
		job.WorkArrangement,
		strings.Join(job.Roles, " "),
		strings.Join(job.Skills, " "),
		strings.Join(job.Requirements, " "),
	}
	if ref := strings.TrimSpace(job.Ref); ref != "" {
		parts = append(parts, "#"+ref, ref)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func matchesLocation(job Job, location string) bool {
	location = strings.ToLower(strings.TrimSpace(location))
	if location == "" {
		return true
	}
	return strings.Contains(strings.ToLower(job.Location), location)
}

// intersects returns true when selected is empty or shares any tag with tags.
func intersects(tags, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, tag := range tags {
		if containsFold(selected, tag) {
			return true
		}
	}
	return false
}

// containsFold returns true when set is empty or holds value (case-insensitive).
func containsFold(set []string, value string) bool {
	if len(set) == 0 {
		return true
	}
	value = strings.TrimSpace(value)
	for _, item := range set {
		if strings.EqualFold(strings.TrimSpace(item), value) {
			return true
		}
	}
	return false
}
