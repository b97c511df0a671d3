package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Stuart1162/fizzyjuice/internal/public/application"
	"github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

func TestUpdateProfile_FirstWrite(t *testing.T) {
	h := newHarness()
	svc := application.NewProfileService(h.profiles, h.notifier, nil, clock, time.Second)
	session := domain.Session{UserID: "u1", Email: "new@example.com"}

	got, err := svc.UpdateProfile(context.Background(), session, application.UpdateProfileCommand{
		DisplayName:     "Sam",
		Role:            "Employer",
		CompanyName:     "Bakehouse",
		CompanyPostcode: "bs1 4dj",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	if err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	if got.Role != domain.RoleEmployer || got.Email != "new@example.com" || got.CompanyPostcode != "BS1 4DJ" {
		t.Errorf("profile = %+v", got)
	}
	select {
	case p := <-h.notifier.users:
		if p.UserID != "u1" {
			t.Errorf("notified uid %s", p.UserID)
		}
	case <-time.After(time.Second):
		t.Fatal("user-created notification not sent")
	}

	// role は初回のみ。
	got, err = svc.UpdateProfile(context.Background(), session, application.UpdateProfileCommand{Role: "jobseeker", CompanyName: "Bakehouse"})
	if err != nil {
		t.Fatalf("second UpdateProfile error: %v", err)
	}
	if got.Role != domain.RoleEmployer {
		t.Errorf("role changed to %s on a later write", got.Role)
	}
	select {
	case <-h.notifier.users:
		t.Error("later writes must not notify")
	default:
	}
}

func TestUpdateProfile_Rejects(t *testing.T) {
	cases := []struct {
		name string
		cmd  application.UpdateProfileCommand
	}{
		{"password mismatch", application.UpdateProfileCommand{Password: "secret1", ConfirmPassword: "secret2"}},
		{"short password", application.UpdateProfileCommand{Password: "abc", ConfirmPassword: "abc"}},
		{"self-assigned admin", application.UpdateProfileCommand{Role: "admin"}},
		{"employer without company", application.UpdateProfileCommand{Role: "employer"}},
		{"bad email", application.UpdateProfileCommand{Email: "nope"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness()
			svc := application.NewProfileService(h.profiles, nil, nil, clock, 0)
			_, err := svc.UpdateProfile(context.Background(), seeker, c.cmd)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("error = %v, want validation", err)
			}
			if len(h.profiles.profiles) != 0 {
				t.Error("rejected profile was stored")
			}
		})
	}
}

func TestProfile_StubBeforeFirstWrite(t *testing.T) {
	h := newHarness()
	svc := application.NewProfileService(h.profiles, nil, nil, clock, 0)
	got, err := svc.Profile(context.Background(), domain.Session{UserID: "u9", Email: "a@b.example"})
	if err != nil {
		t.Fatalf("Profile error: %v", err)
	}
	if got.Role != domain.RoleJobseeker || got.Email != "a@b.example" {
		t.Errorf("stub = %+v", got)
	}
}

func TestSavePreferences(t *testing.T) {
	h := newHarness()
	svc := application.NewProfileService(h.profiles, nil, nil, clock, 0)
	prefs := domain.Preferences{Strengths: []string{"staff meals", "Paid breaks"}, Location: " London "}
	got, err := svc.SavePreferences(context.Background(), seeker, prefs)
	if err != nil {
		t.Fatalf("SavePreferences error: %v", err)
	}
	if got.Strengths[0] != "Staff meals" || got.Location != "London" {
		t.Errorf("prefs = %+v", got)
	}
	prefs.Strengths = []string{"Paid breaks", "Living wage", "Staff meals", "Free parking"}
	if _, err := svc.SavePreferences(context.Background(), seeker, prefs); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("four strengths = %v, want validation", err)
	}
	stored, _ := svc.Preferences(context.Background(), seeker)
	if len(stored.Strengths) != 2 {
		t.Errorf("stored prefs overwritten by rejected write: %+v", stored)
	}
}

func TestSessionResolver(t *testing.T) {
	h := newHarness()
	h.profiles.profiles["boss"] = domain.Profile{UserID: "boss", Role: domain.RoleAdmin, Email: "boss@example.com"}
	resolver := application.NewSessionResolver(h.profiles, []string{"root@example.com"})

	s, err := resolver.Resolve(context.Background(), "boss", "", "")
	if err != nil || s.Role != domain.RoleAdmin || s.Email != "boss@example.com" {
		t.Errorf("Resolve(boss) = %+v, %v", s, err)
	}
	s, _ = resolver.Resolve(context.Background(), "root", "ROOT@example.com", "")
	if !s.Superadmin || s.Role != domain.RoleJobseeker {
		t.Errorf("Resolve(root) = %+v", s)
	}
	s, _ = resolver.Resolve(context.Background(), " ", "", "")
	if s.Authenticated() {
		t.Error("blank uid should resolve to anonymous")
	}
}

func TestSessionResolver_SelfSetEmailIsNotSuperadmin(t *testing.T) {
	h := newHarness()
	profiles := application.NewProfileService(h.profiles, h.notifier, nil, clock, time.Second)
	resolver := application.NewSessionResolver(h.profiles, []string{"boss@fizzyjuice.uk"})

	mallory := domain.Session{UserID: "mallory"}
	if _, err := profiles.UpdateProfile(context.Background(), mallory, application.UpdateProfileCommand{
		DisplayName: "Mallory",
		Email:       "boss@fizzyjuice.uk",
	}); err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}

	s, err := resolver.Resolve(context.Background(), "mallory", "", "")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if s.Superadmin || s.IsAdmin() {
		t.Errorf("stored profile email granted superadmin: %+v", s)
	}
}

func TestUpdateProfile_TokenEmailWins(t *testing.T) {
	h := newHarness()
	svc := application.NewProfileService(h.profiles, h.notifier, nil, clock, time.Second)
	session := domain.Session{UserID: "u2", Email: "real@example.com"}

	got, err := svc.UpdateProfile(context.Background(), session, application.UpdateProfileCommand{
		DisplayName: "Sam",
		Email:       "boss@fizzyjuice.uk",
	})
	if err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	if got.Email != "real@example.com" {
		t.Errorf("email = %q, want the token email", got.Email)
	}
}
