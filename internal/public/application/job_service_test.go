package application_test

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/Stuart1162/fizzyjuice/internal/public/application"
	"github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

var (
	anonymous = domain.AnonymousSession()
	seeker    = domain.Session{UserID: "seeker", Role: domain.RoleJobseeker}
	employer  = domain.Session{UserID: "employer", Role: domain.RoleEmployer}
	admin     = domain.Session{UserID: "admin", Role: domain.RoleAdmin}
)

func postable() domain.Job {
	return domain.Job{
		Title:        "Line Cook",
		Company:      "Gourmet Bistro",
		Location:     "London",
		Description:  "Grill section",
		JobType:      "Full-time",
		Roles:        []string{"Chef"},
		ContactEmail: "jobs@bistro.example",
	}
}

func boardJobs() []domain.Job {
	return []domain.Job{
		{ID: "fresh", Title: "Chef", Location: "London", Roles: []string{"Chef"}, JobType: "Full-time", CreatedAt: daysAgo(1), CreatedBy: "employer"},
		{ID: "old", Title: "Barista", Location: "Leeds", Roles: []string{"Barista"}, JobType: "Part-time", CreatedAt: daysAgo(20), CreatedBy: "employer"},
		{ID: "draft", Title: "Waiter", Location: "London", Roles: []string{"Waiter"}, JobType: "Full-time", Draft: true, CreatedAt: daysAgo(2), CreatedBy: "employer"},
		{ID: "newer", Title: "Kitchen Porter", Location: "Bristol", Roles: []string{"Kitchen Porter"}, JobType: "Full-time", CreatedAt: fixedNowPtr(), CreatedBy: "other"},
	}
}

func fixedNowPtr() *time.Time {
	t := fixedNow
	return &t
}

func ids(jobs []domain.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ── Listing ────────────────────────────────────────────────────────────────

func TestList_Visibility(t *testing.T) {
	h := newHarness(boardJobs()...)
	svc := application.NewJobQueryService(h.deps)

	cases := []struct {
		name    string
		session domain.Session
		want    []string
	}{
		{"anonymous sees published and fresh", anonymous, []string{"newer", "fresh"}},
		{"owner also sees own draft and archived", employer, []string{"newer", "fresh", "draft", "old"}},
		{"admin sees everything", admin, []string{"newer", "fresh", "draft", "old"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := svc.List(context.Background(), c.session, domain.Filter{})
			if err != nil {
				t.Fatalf("List error: %v", err)
			}
			if !equal(ids(got), c.want) {
				t.Errorf("List = %v, want %v", ids(got), c.want)
			}
		})
	}
}

func TestList_AppliesFilter(t *testing.T) {
	h := newHarness(boardJobs()...)
	svc := application.NewJobQueryService(h.deps)
	got, err := svc.List(context.Background(), admin, domain.Filter{Location: "london"})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if !equal(ids(got), []string{"fresh", "draft"}) {
		t.Errorf("List = %v", ids(got))
	}
}

func TestDetail_HidesDraftFromStrangers(t *testing.T) {
	h := newHarness(boardJobs()...)
	svc := application.NewJobQueryService(h.deps)
	if _, err := svc.Detail(context.Background(), seeker, "draft"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("stranger Detail(draft) = %v, want not found", err)
	}
	if _, err := svc.Detail(context.Background(), employer, "draft"); err != nil {
		t.Errorf("owner Detail(draft) error: %v", err)
	}
	if _, err := svc.Detail(context.Background(), anonymous, "old"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("anonymous Detail(archived) = %v, want not found", err)
	}
}

func TestPersonalized(t *testing.T) {
	jobs := []domain.Job{
		{ID: "B", Title: "Chef", Location: "London", Roles: []string{"Chef"}, JobType: "Full-time", CreatedAt: daysAgo(1)},
		{ID: "A", Title: "Chef", Location: "London", Roles: []string{"Chef"}, JobType: "Full-time", CompanyStrengths: []string{"Staff meals"}, CreatedAt: daysAgo(3)},
	}
	h := newHarness(jobs...)
	svc := application.NewJobQueryService(h.deps)

	got, err := svc.Personalized(context.Background(), seeker)
	if err != nil {
		t.Fatalf("Personalized error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("no preferences should give an empty list, got %v", got)
	}

	h.profiles.prefs[seeker.UserID] = domain.Preferences{Strengths: []string{"Flexible hours", "Staff meals"}, Roles: []string{"Chef"}}
	got, err = svc.Personalized(context.Background(), seeker)
	if err != nil {
		t.Fatalf("Personalized error: %v", err)
	}
	if len(got) != 2 || got[0].Job.ID != "A" || got[0].MatchCount != 1 || got[1].MatchCount != 0 {
		t.Errorf("ranking = %+v", got)
	}

	if _, err := svc.Personalized(context.Background(), anonymous); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("anonymous Personalized = %v", err)
	}
}

// ── Create / Edit / Delete ─────────────────────────────────────────────────

func TestCreate_ByRole(t *testing.T) {
	cases := []struct {
		name    string
		session domain.Session
		draft   bool
		err     error
	}{
		{"employer creates draft", employer, true, nil},
		{"admin publishes", admin, false, nil},
		{"jobseeker must pay", seeker, false, domain.ErrPaymentRequired},
		{"anonymous must sign in", anonymous, false, domain.ErrUnauthenticated},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness()
			svc := application.NewJobCommandService(h.deps)
			job, err := svc.Create(context.Background(), c.session, postable())
			if !errors.Is(err, c.err) {
				t.Fatalf("Create error = %v, want %v", err, c.err)
			}
			if c.err != nil {
				if h.jobs.writes != 0 {
					t.Errorf("failed create wrote %d times", h.jobs.writes)
				}
				return
			}
			if job.Draft != c.draft || job.CreatedBy != c.session.UserID {
				t.Errorf("created %+v", job)
			}
			if len(job.Ref) != 5 || job.CreatedAt == nil || !job.CreatedAt.Equal(fixedNow) {
				t.Errorf("ref/createdAt not assigned: %+v", job)
			}
		})
	}
}

func TestCreate_DraftNotifiesAdmins(t *testing.T) {
	h := newHarness()
	svc := application.NewJobCommandService(h.deps)
	job, err := svc.Create(context.Background(), employer, postable())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	select {
	case got := <-h.notifier.drafts:
		if got.ID != job.ID {
			t.Errorf("notified job %s, want %s", got.ID, job.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("draft notification not sent")
	}
	if types := h.events.types(); len(types) != 1 || types[0] != domain.EventCreated {
		t.Errorf("events = %v", types)
	}
}

func TestCreate_StripsWordOnTheStreetForNonAdmins(t *testing.T) {
	h := newHarness()
	svc := application.NewJobCommandService(h.deps)
	in := postable()
	in.WordOnTheStreet = "Great team"
	job, err := svc.Create(context.Background(), employer, in)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if job.WordOnTheStreet != "" {
		t.Errorf("employer set wordOnTheStreet = %q", job.WordOnTheStreet)
	}
}

func TestCreate_ValidationBeforeWrite(t *testing.T) {
	h := newHarness()
	svc := application.NewJobCommandService(h.deps)
	in := postable()
	in.Title = ""
	if _, err := svc.Create(context.Background(), admin, in); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("Create error = %v, want validation", err)
	}
	if h.jobs.writes != 0 {
		t.Errorf("invalid create wrote %d times", h.jobs.writes)
	}
}

func TestEdit(t *testing.T) {
	existing := postable()
	existing.ID = "j1"
	existing.CreatedBy = "employer"
	existing.Ref = "12345"
	existing.Draft = true
	existing.WordOnTheStreet = "Admin note"
	existing.CreatedAt = daysAgo(3)

	t.Run("owner keeps draft and admin note", func(t *testing.T) {
		h := newHarness(existing)
		svc := application.NewJobCommandService(h.deps)
		edit := postable()
		edit.Title = "Sous Chef"
		edit.WordOnTheStreet = "Employer overwrite"
		got, err := svc.Edit(context.Background(), employer, "j1", edit)
		if err != nil {
			t.Fatalf("Edit error: %v", err)
		}
		if got.Title != "Sous Chef" || !got.Draft || got.Ref != "12345" {
			t.Errorf("edited = %+v", got)
		}
		if got.WordOnTheStreet != "Admin note" {
			t.Errorf("wordOnTheStreet = %q, want preserved", got.WordOnTheStreet)
		}
		if got.UpdatedAt == nil || !got.UpdatedAt.Equal(fixedNow) {
			t.Errorf("updatedAt = %v", got.UpdatedAt)
		}
	})

	t.Run("legacy job type survives an unrelated edit", func(t *testing.T) {
		legacy := existing.Clone()
		legacy.JobType = "Internship"
		h := newHarness(legacy)
		svc := application.NewJobCommandService(h.deps)
		edit := postable()
		edit.JobType = "Internship"
		edit.Title = "Pastry Intern"
		got, err := svc.Edit(context.Background(), employer, "j1", edit)
		if err != nil {
			t.Fatalf("Edit error: %v", err)
		}
		if got.JobType != "Internship" || got.Title != "Pastry Intern" {
			t.Errorf("edited = %+v", got)
		}

		fresh := postable()
		fresh.JobType = "Internship"
		if _, err := svc.Create(context.Background(), employer, fresh); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Create with legacy type = %v, want validation error", err)
		}
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		h := newHarness(existing)
		svc := application.NewJobCommandService(h.deps)
		if _, err := svc.Edit(context.Background(), seeker, "j1", postable()); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("Edit error = %v, want forbidden", err)
		}
		if h.jobs.writes != 0 {
			t.Error("forbidden edit wrote")
		}
	})

	t.Run("missing job", func(t *testing.T) {
		h := newHarness()
		svc := application.NewJobCommandService(h.deps)
		if _, err := svc.Edit(context.Background(), admin, "nope", postable()); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("Edit error = %v, want not found", err)
		}
	})
}

type failingCleaner struct{ calls int }

func (f *failingCleaner) DeleteByJob(context.Context, string) error {
	f.calls++
	return errors.New("saved down")
}

func (f *failingCleaner) Delete(context.Context, string) error {
	f.calls++
	return errors.New("metrics down")
}

func TestJobCascade_Delete(t *testing.T) {
	t.Run("cleanup failures are logged only", func(t *testing.T) {
		existing := postable()
		existing.ID = "j1"
		h := newHarness(existing)
		var buf bytes.Buffer
		cleaner := &failingCleaner{}
		cascade := application.JobCascade{Jobs: h.jobs, SavedJobs: cleaner, Metrics: cleaner, Logger: log.New(&buf, "", 0)}

		if err := cascade.Delete(context.Background(), "j1"); err != nil {
			t.Fatalf("Delete error: %v", err)
		}
		if cleaner.calls != 2 {
			t.Errorf("cleanup calls = %d, want 2", cleaner.calls)
		}
		if !strings.Contains(buf.String(), "saved job cascade failed job=j1") || !strings.Contains(buf.String(), "metrics cascade failed job=j1") {
			t.Errorf("log = %q", buf.String())
		}
	})

	t.Run("missing job stops before cleanup", func(t *testing.T) {
		h := newHarness()
		h.saved.items[savedKey("seeker", "gone")] = domain.SavedJob{UserID: "seeker", JobID: "gone", Saved: true}
		cascade := application.JobCascade{Jobs: h.jobs, SavedJobs: h.saved, Metrics: h.metrics}

		if err := cascade.Delete(context.Background(), "gone"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("Delete = %v, want not found", err)
		}
		if len(h.saved.items) != 1 {
			t.Error("saved rows removed for a job that was never deleted")
		}
	})

	t.Run("cleaners are optional", func(t *testing.T) {
		existing := postable()
		existing.ID = "j1"
		h := newHarness(existing)
		if err := (application.JobCascade{Jobs: h.jobs}).Delete(context.Background(), "j1"); err != nil {
			t.Fatalf("Delete error: %v", err)
		}
	})
}

func TestDelete_Cascades(t *testing.T) {
	existing := postable()
	existing.ID = "j1"
	existing.CreatedBy = "employer"
	h := newHarness(existing)
	h.saved.items[savedKey("seeker", "j1")] = domain.SavedJob{UserID: "seeker", JobID: "j1", Saved: true}
	h.metrics.counters["j1"] = &domain.JobMetrics{JobID: "j1", Views: 4}

	svc := application.NewJobCommandService(h.deps)
	if err := svc.Delete(context.Background(), seeker, "j1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("stranger Delete = %v, want forbidden", err)
	}
	if err := svc.Delete(context.Background(), employer, "j1"); err != nil {
		t.Fatalf("owner Delete error: %v", err)
	}
	if _, err := h.jobs.FindByID(context.Background(), "j1"); !errors.Is(err, domain.ErrNotFound) {
		t.Error("job still present")
	}
	if len(h.saved.items) != 0 || len(h.metrics.counters) != 0 {
		t.Errorf("cascade incomplete: saved=%d metrics=%d", len(h.saved.items), len(h.metrics.counters))
	}
}
