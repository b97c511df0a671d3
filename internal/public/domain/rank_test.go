package domain_test

import (
	"testing"

	"github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

// ── Activation ─────────────────────────────────────────────────────────────

func TestRank_EmptyPreferencesYieldNothing(t *testing.T) {
	jobs := sampleJobs(fixedNow)
	cases := []domain.Preferences{
		{},
		{Location: "   "},
		{Strengths: []string{}, Roles: nil},
	}
	for _, prefs := range cases {
		got := domain.Rank(jobs, prefs)
		if got == nil {
			t.Errorf("Rank(%+v) returned nil, want empty slice", prefs)
		}
		if len(got) != 0 {
			t.Errorf("Rank(%+v) returned %d jobs, want 0", prefs, len(got))
		}
	}
}

func TestPreferencesHasAny(t *testing.T) {
	cases := []struct {
		prefs domain.Preferences
		want  bool
	}{
		{domain.Preferences{}, false},
		{domain.Preferences{Location: " "}, false},
		{domain.Preferences{Location: "Leeds"}, true},
		{domain.Preferences{Strengths: []string{"Paid breaks"}}, true},
		{domain.Preferences{Roles: []string{"Chef"}}, true},
		{domain.Preferences{ContractTypes: []string{"Part-time"}}, true},
	}
	for _, c := range cases {
		if got := c.prefs.HasAny(); got != c.want {
			t.Errorf("HasAny(%+v) = %v, want %v", c.prefs, got, c.want)
		}
	}
}

// ── Ranking ────────────────────────────────────────────────────────────────

func TestRank_StrengthMatchOutranksRecency(t *testing.T) {
	prefs := domain.Preferences{
		Strengths: []string{"Flexible hours", "Staff meals"},
		Roles:     []string{"Chef"},
	}
	jobs := []domain.Job{
		{ID: "B", Roles: []string{"Chef"}, CreatedAt: daysAgo(0)},
		{ID: "A", Roles: []string{"Chef"}, CompanyStrengths: []string{"Staff meals"}, CreatedAt: daysAgo(3)},
	}
	got := domain.Rank(jobs, prefs)
	if len(got) != 2 {
		t.Fatalf("Rank returned %d jobs, want 2", len(got))
	}
	if got[0].Job.ID != "A" || got[1].Job.ID != "B" {
		t.Errorf("Rank order = [%s %s], want [A B]", got[0].Job.ID, got[1].Job.ID)
	}
	if got[0].MatchCount != 1 || got[1].MatchCount != 0 {
		t.Errorf("match counts = [%d %d], want [1 0]", got[0].MatchCount, got[1].MatchCount)
	}
}

func TestRank_HardFiltersApply(t *testing.T) {
	prefs := domain.Preferences{
		Strengths:     []string{"Paid breaks"},
		Location:      "london",
		ContractTypes: []string{"Full-time", "Contract"},
	}
	got := domain.Rank(sampleJobs(fixedNow), prefs)
	want := map[string]bool{"1": true, "3": true}
	if len(got) != len(want) {
		t.Fatalf("Rank returned %d jobs, want %d", len(got), len(want))
	}
	for _, r := range got {
		if !want[r.Job.ID] {
			t.Errorf("unexpected job %s in ranked list", r.Job.ID)
		}
	}
}

func TestRank_OutputIsSorted(t *testing.T) {
	prefs := domain.Preferences{Strengths: []string{"Paid breaks", "Living wage", "Staff meals"}}
	jobs := []domain.Job{
		{ID: "1", CompanyStrengths: []string{"Paid breaks"}, CreatedAt: daysAgo(5)},
		{ID: "2", CompanyStrengths: []string{"Paid breaks", "Living wage"}, CreatedAt: daysAgo(9)},
		{ID: "3", CreatedAt: daysAgo(1)},
		{ID: "4", CompanyStrengths: []string{"Living wage"}, CreatedAt: daysAgo(2)},
		{ID: "5", CompanyStrengths: []string{"Paid breaks", "Living wage", "Staff meals"}, UpdatedAt: daysAgo(4)},
		{ID: "6", CompanyStrengths: []string{"Free parking"}, CreatedAt: daysAgo(0)},
	}
	got := domain.Rank(jobs, prefs)
	if len(got) != len(jobs) {
		t.Fatalf("Rank returned %d jobs, want %d", len(got), len(jobs))
	}
	for i := 1; i < len(got); i++ {
		a, b := got[i-1], got[i]
		if a.MatchCount < b.MatchCount {
			t.Errorf("position %d: matchCount %d < %d", i, a.MatchCount, b.MatchCount)
		}
		if a.MatchCount == b.MatchCount && a.Job.RecencyTime().Before(b.Job.RecencyTime()) {
			t.Errorf("position %d: %s older than %s with equal matchCount", i, a.Job.ID, b.Job.ID)
		}
	}
	if got[0].Job.ID != "5" {
		t.Errorf("best match = %s, want 5", got[0].Job.ID)
	}
}

func TestRank_TiesKeepInputOrder(t *testing.T) {
	prefs := domain.Preferences{Roles: []string{"Chef"}}
	jobs := []domain.Job{
		{ID: "x", Roles: []string{"Chef"}, CreatedAt: daysAgo(1)},
		{ID: "y", Roles: []string{"Chef"}, CreatedAt: daysAgo(1)},
		{ID: "z", Roles: []string{"Chef"}, CreatedAt: daysAgo(1)},
	}
	got := domain.Rank(jobs, prefs)
	for i, want := range []string{"x", "y", "z"} {
		if got[i].Job.ID != want {
			t.Errorf("position %d = %s, want %s", i, got[i].Job.ID, want)
		}
	}
}

func TestMatchCount_IgnoresDuplicatesAndCase(t *testing.T) {
	prefs := domain.Preferences{Strengths: []string{"staff meals"}}
	job := domain.Job{CompanyStrengths: []string{"Staff meals", "Staff Meals", "Paid breaks"}}
	if got := domain.MatchCount(job, prefs); got != 1 {
		t.Errorf("MatchCount = %d, want 1", got)
	}
}
