package domain

import (
	"sort"
	"strings"
	"time"

	publicdomain "github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

// JobReport joins an active job with its engagement counters.
type JobReport struct {
	Job     publicdomain.Job
	Metrics publicdomain.JobMetrics
}

// MergeMetrics は jobs の順序を保ったまま metrics を jobId で結合する。欠損はゼロ値。
func MergeMetrics(jobs []publicdomain.Job, metrics map[string]publicdomain.JobMetrics) []JobReport {
	reports := make([]JobReport, 0, len(jobs))
	for _, job := range jobs {
		m, ok := metrics[job.ID]
		if !ok {
			m = publicdomain.JobMetrics{JobID: job.ID}
		}
		reports = append(reports, JobReport{Job: job, Metrics: m})
	}
	return reports
}

// UserOverview is one row of the admin user table.
type UserOverview struct {
	Profile publicdomain.Profile
	JobRefs []string
}

// RoleCounts tallies profiles per resolved role.
type RoleCounts struct {
	Jobseekers int
	Employers  int
	Admins     int
	Total      int
}

func CountRoles(profiles []publicdomain.Profile) RoleCounts {
	var counts RoleCounts
	for i := range profiles {
		switch publicdomain.ResolveRole(&profiles[i]) {
		case publicdomain.RoleEmployer:
			counts.Employers++
		case publicdomain.RoleAdmin:
			counts.Admins++
		default:
			counts.Jobseekers++
		}
		counts.Total++
	}
	return counts
}

// UserListing is the admin user table plus its role summary.
type UserListing struct {
	Users  []UserOverview
	Counts RoleCounts
	Filter RoleFilter
}

// BuildUserListing filters profiles by role and attaches the refs of the jobs each user created.
// Counts always cover every profile.
func BuildUserListing(profiles []publicdomain.Profile, jobs []publicdomain.Job, filter RoleFilter) UserListing {
	refs := make(map[string][]string)
	for _, job := range jobs {
		if job.CreatedBy == "" || job.Ref == "" {
			continue
		}
		refs[job.CreatedBy] = append(refs[job.CreatedBy], job.Ref)
	}

	users := make([]UserOverview, 0, len(profiles))
	for i := range profiles {
		profile := profiles[i]
		profile.Role = publicdomain.ResolveRole(&profile)
		if !filter.Matches(profile.Role) {
			continue
		}
		users = append(users, UserOverview{Profile: profile, JobRefs: refs[profile.UserID]})
	}
	sort.SliceStable(users, func(i, j int) bool {
		return strings.ToLower(users[i].Profile.Email) < strings.ToLower(users[j].Profile.Email)
	})
	return UserListing{Users: users, Counts: CountRoles(profiles), Filter: filter}
}

// StrengthCount is how many jobseekers selected a strength.
type StrengthCount struct {
	Strength string `json:"strength"`
	Count    int    `json:"count"`
}

// StrengthStats summarises strength preferences across jobseekers.
type StrengthStats struct {
	Counts           []StrengthCount `json:"counts"`
	SeekersWithPrefs int             `json:"seekersWithPrefs"`
	GeneratedAt      time.Time       `json:"generatedAt"`
}

// TallyStrengths counts every vocabulary strength (zero included), most popular first.
// 同数は語彙の並び順。語彙外の値は無視する。
func TallyStrengths(prefs []publicdomain.Preferences, generatedAt time.Time) StrengthStats {
	index := make(map[string]int, len(publicdomain.CompanyStrengths))
	counts := make([]StrengthCount, 0, len(publicdomain.CompanyStrengths))
	for i, strength := range publicdomain.CompanyStrengths {
		index[strings.ToLower(strength)] = i
		counts = append(counts, StrengthCount{Strength: strength})
	}

	seekers := 0
	for _, p := range prefs {
		if !p.HasAny() {
			continue
		}
		seekers++
		seen := make(map[int]struct{}, len(p.Strengths))
		for _, strength := range p.Strengths {
			i, ok := index[strings.ToLower(strings.TrimSpace(strength))]
			if !ok {
				continue
			}
			if _, dup := seen[i]; dup {
				continue
			}
			seen[i] = struct{}{}
			counts[i].Count++
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return StrengthStats{Counts: counts, SeekersWithPrefs: seekers, GeneratedAt: generatedAt}
}
