package domain

import (
	"sort"
	"strings"
)

// Preferences are the jobseeker's personalisation settings.
type Preferences struct {
	Strengths     []string
	Roles         []string
	ContractTypes []string
	Location      string
}

// HasAny reports whether the jobseeker opted in to a personalised list.
func (p Preferences) HasAny() bool {
	return len(p.Strengths) > 0 ||
		len(p.Roles) > 0 ||
		len(p.ContractTypes) > 0 ||
		strings.TrimSpace(p.Location) != ""
}

// HardFilter returns the must-pass part of the preferences.
func (p Preferences) HardFilter() Filter {
	return Filter{
		Location:      p.Location,
		Roles:         p.Roles,
		ContractTypes: p.ContractTypes,
	}
}

// RankedJob pairs a job with its strength overlap.
type RankedJob struct {
	Job        Job
	MatchCount int
}

// MatchCount counts the job's company strengths that the jobseeker selected.
func MatchCount(job Job, prefs Preferences) int {
	if len(prefs.Strengths) == 0 {
		return 0
	}
	count := 0
	seen := make(map[string]struct{}, len(job.CompanyStrengths))
	for _, strength := range job.CompanyStrengths {
		key := strings.ToLower(strings.TrimSpace(strength))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if containsFold(prefs.Strengths, strength) {
			count++
		}
	}
	return count
}

// Rank builds "Your list": hard filters first, then matchCount desc, then newest first.
// Exact ties keep input order. Without any preference the result is empty.
func Rank(jobs []Job, prefs Preferences) []RankedJob {
	ranked := make([]RankedJob, 0)
	if !prefs.HasAny() {
		return ranked
	}

	hard := prefs.HardFilter()
	for _, job := range jobs {
		if !hard.Matches(job) {
			continue
		}
		ranked = append(ranked, RankedJob{Job: job, MatchCount: MatchCount(job, prefs)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].MatchCount != ranked[j].MatchCount {
			return ranked[i].MatchCount > ranked[j].MatchCount
		}
		return ranked[i].Job.RecencyTime().After(ranked[j].Job.RecencyTime())
	})
	return ranked
}
