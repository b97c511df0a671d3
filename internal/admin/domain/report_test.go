package domain_test

import (
	"testing"
	"time"

	admindomain "github.com/Stuart1162/fizzyjuice/internal/admin/domain"
	publicdomain "github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

var now = time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)

func ago(days int) *time.Time {
	t := now.Add(-time.Duration(days) * 24 * time.Hour)
	return &t
}

// ── JobView ────────────────────────────────────────────────────────────────

func TestJobViewIncludes(t *testing.T) {
	draft := publicdomain.Job{Draft: true, CreatedAt: ago(1)}
	live := publicdomain.Job{CreatedAt: ago(1)}
	archived := publicdomain.Job{CreatedAt: ago(20)}
	restored := publicdomain.Job{CreatedAt: ago(20), UpdatedAt: ago(0)}

	cases := []struct {
		view admindomain.JobView
		job  publicdomain.Job
		want bool
	}{
		{admindomain.JobViewDrafts, draft, true},
		{admindomain.JobViewDrafts, live, false},
		{admindomain.JobViewArchived, archived, true},
		{admindomain.JobViewArchived, restored, false},
		{admindomain.JobViewArchived, draft, false},
		{admindomain.JobViewActive, live, true},
		{admindomain.JobViewActive, archived, false},
		{admindomain.JobViewAll, draft, true},
	}
	for _, c := range cases {
		if got := c.view.Includes(c.job, now, 14); got != c.want {
			t.Errorf("%s.Includes(%+v) = %v, want %v", c.view, c.job, got, c.want)
		}
	}
}

func TestNewJobView(t *testing.T) {
	if v, err := admindomain.NewJobView(""); err != nil || v != admindomain.JobViewAll {
		t.Errorf("NewJobView(\"\") = %s, %v", v, err)
	}
	if v, err := admindomain.NewJobView(" Drafts "); err != nil || v != admindomain.JobViewDrafts {
		t.Errorf("NewJobView(Drafts) = %s, %v", v, err)
	}
	if _, err := admindomain.NewJobView("deleted"); err == nil {
		t.Error("NewJobView(deleted) expected error")
	}
}

// ── Users ──────────────────────────────────────────────────────────────────

func TestBuildUserListing(t *testing.T) {
	profiles := []publicdomain.Profile{
		{UserID: "u2", Email: "b@example.com", Role: publicdomain.RoleEmployer},
		{UserID: "u1", Email: "A@example.com"},
		{UserID: "u3", Email: "c@example.com", Role: publicdomain.RoleAdmin},
	}
	jobs := []publicdomain.Job{
		{ID: "j1", CreatedBy: "u2", Ref: "11111"},
		{ID: "j2", CreatedBy: "u2", Ref: "22222"},
		{ID: "j3", CreatedBy: "u3"},
	}

	all := admindomain.BuildUserListing(profiles, jobs, "")
	if all.Counts != (admindomain.RoleCounts{Jobseekers: 1, Employers: 1, Admins: 1, Total: 3}) {
		t.Errorf("counts = %+v", all.Counts)
	}
	if len(all.Users) != 3 || all.Users[0].Profile.UserID != "u1" {
		t.Fatalf("users not sorted by email: %+v", all.Users)
	}
	if all.Users[0].Profile.Role != publicdomain.RoleJobseeker {
		t.Errorf("missing role should resolve to jobseeker, got %q", all.Users[0].Profile.Role)
	}

	filter, err := admindomain.NewRoleFilter("employer")
	if err != nil {
		t.Fatal(err)
	}
	employers := admindomain.BuildUserListing(profiles, jobs, filter)
	if len(employers.Users) != 1 || len(employers.Users[0].JobRefs) != 2 {
		t.Errorf("employer listing = %+v", employers.Users)
	}
	if employers.Counts.Total != 3 {
		t.Errorf("counts must cover every profile, got %+v", employers.Counts)
	}
}

func TestNewRoleFilter(t *testing.T) {
	for _, v := range []string{"", "all", "ALL"} {
		f, err := admindomain.NewRoleFilter(v)
		if err != nil || f.String() != "all" {
			t.Errorf("NewRoleFilter(%q) = %s, %v", v, f, err)
		}
	}
	if _, err := admindomain.NewRoleFilter("superadmin"); err == nil {
		t.Error("superadmin is not a filterable role")
	}
}

// ── Reports & analytics ────────────────────────────────────────────────────

func TestMergeMetrics_KeepsOrderAndZeroFills(t *testing.T) {
	jobs := []publicdomain.Job{{ID: "a"}, {ID: "b"}}
	reports := admindomain.MergeMetrics(jobs, map[string]publicdomain.JobMetrics{"b": {JobID: "b", Views: 7}})
	if len(reports) != 2 || reports[0].Job.ID != "a" || reports[1].Metrics.Views != 7 {
		t.Errorf("reports = %+v", reports)
	}
	if reports[0].Metrics.JobID != "a" || reports[0].Metrics.Views != 0 {
		t.Errorf("missing metrics should be zero, got %+v", reports[0].Metrics)
	}
}

func TestTallyStrengths(t *testing.T) {
	prefs := []publicdomain.Preferences{
		{Strengths: []string{"Staff meals", "staff meals", "Paid breaks"}},
		{Strengths: []string{"Staff meals", "Unicorns"}},
		{Location: "Leeds"},
		{},
	}
	stats := admindomain.TallyStrengths(prefs, now)
	if stats.SeekersWithPrefs != 3 {
		t.Errorf("seekers = %d, want 3", stats.SeekersWithPrefs)
	}
	if len(stats.Counts) != len(publicdomain.CompanyStrengths) {
		t.Fatalf("counts cover %d strengths, want %d", len(stats.Counts), len(publicdomain.CompanyStrengths))
	}
	if stats.Counts[0] != (admindomain.StrengthCount{Strength: "Staff meals", Count: 2}) {
		t.Errorf("top = %+v", stats.Counts[0])
	}
	if stats.Counts[1] != (admindomain.StrengthCount{Strength: "Paid breaks", Count: 1}) {
		t.Errorf("second = %+v", stats.Counts[1])
	}
	if stats.Counts[2].Strength != publicdomain.CompanyStrengths[0] || stats.Counts[2].Count != 0 {
		t.Errorf("zero counts should keep vocabulary order, got %+v", stats.Counts[2])
	}
}
