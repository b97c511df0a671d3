package application

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

const minPasswordLength = 6

type profileService struct {
	profiles      ProfileRepository
	notifier      Notifier
	logger        *log.Logger
	now           func() time.Time
	notifyTimeout time.Duration
}

// NewProfileService wires profile and preference use-cases.
func NewProfileService(profiles ProfileRepository, notifier Notifier, logger *log.Logger, now func() time.Time, notifyTimeout time.Duration) ProfileService {
	if now == nil {
		now = time.Now
	}
	if notifyTimeout <= 0 {
		notifyTimeout = 10 * time.Second
	}
	return &profileService{profiles: profiles, notifier: notifier, logger: logger, now: now, notifyTimeout: notifyTimeout}
}

// Profile returns the stored profile, or a jobseeker stub built from the token before the first write.
func (s *profileService) Profile(ctx context.Context, session domain.Session) (*domain.Profile, error) {
	if !session.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	profile, err := s.profiles.FindProfile(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return &domain.Profile{
			UserID:      session.UserID,
			Email:       session.Email,
			DisplayName: session.DisplayName,
			Role:        domain.RoleJobseeker,
		}, nil
	}
	return profile, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, session domain.Session, cmd UpdateProfileCommand) (*domain.Profile, error) {
	if !session.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	if err := validatePassword(cmd.Password, cmd.ConfirmPassword); err != nil {
		return nil, err
	}

	existing, err := s.profiles.FindProfile(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	next, err := s.buildProfile(session, existing, cmd)
	if err != nil {
		return nil, err
	}

	created, err := s.profiles.UpsertProfile(ctx, next)
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	if created && s.logger != nil {
		s.logger.Printf("profile created uid=%s role=%s", next.UserID, next.Role)
	}
	if created && s.notifier != nil {
		profile := *next
		go func() {
			nctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
			defer cancel()
			s.notifier.UserCreated(nctx, profile)
		}()
	}
	return s.profiles.FindProfile(ctx, session.UserID)
}

func (s *profileService) buildProfile(session domain.Session, existing *domain.Profile, cmd UpdateProfileCommand) (*domain.Profile, error) {
	now := s.now().UTC()
	next := &domain.Profile{UserID: session.UserID, Role: domain.RoleJobseeker, CreatedAt: &now}
	if existing != nil {
		copied := *existing
		next = &copied
		next.UserID = session.UserID
	}

	// role はアカウント作成時のみ設定可能。admin は自己申請できない。
	if existing == nil || existing.Role == "" {
		if raw := strings.TrimSpace(cmd.Role); raw != "" {
			role, err := domain.ParseRole(raw)
			if err != nil || role == domain.RoleAdmin {
				return nil, domain.Invalidf("role must be jobseeker or employer")
			}
			next.Role = role
		}
		if next.Role == "" {
			next.Role = domain.RoleJobseeker
		}
	}

	if v := strings.TrimSpace(cmd.DisplayName); v != "" {
		next.DisplayName = v
	} else if next.DisplayName == "" {
		next.DisplayName = session.DisplayName
	}

	// 認証済みトークンの email が常に優先。クライアント指定はトークンに email が無い場合のみ。
	email := strings.TrimSpace(session.Email)
	if email == "" {
		email = strings.TrimSpace(cmd.Email)
	}
	if email == "" {
		email = next.Email
	}
	if email != "" {
		normalized, err := domain.NormalizeEmail(email)
		if err != nil {
			return nil, err
		}
		next.Email = normalized
	}

	if next.Role == domain.RoleEmployer {
		next.CompanyName = strings.TrimSpace(cmd.CompanyName)
		next.CompanyLocation = strings.TrimSpace(cmd.CompanyLocation)
		next.CompanyPostcode = strings.ToUpper(strings.TrimSpace(cmd.CompanyPostcode))
		if next.CompanyName == "" {
			return nil, domain.Invalidf("companyName is required for employers")
		}
		var err error
		if next.ApplicationEmail, err = domain.NormalizeEmail(cmd.ApplicationEmail); err != nil {
			return nil, err
		}
		if next.InstagramURL, err = domain.NormalizeURL(cmd.InstagramURL); err != nil {
			return nil, err
		}
	}

	next.UpdatedAt = &now
	return next, nil
}

// validatePassword mirrors the registration form checks. The password itself is never stored.
func validatePassword(password, confirm string) error {
	if password == "" && confirm == "" {
		return nil
	}
	if password != confirm {
		return domain.Invalidf("passwords do not match")
	}
	if len(password) < minPasswordLength {
		return domain.Invalidf("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

func (s *profileService) Preferences(ctx context.Context, session domain.Session) (*domain.Preferences, error) {
	if !session.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	prefs, err := s.profiles.FindPreferences(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if prefs == nil {
		return &domain.Preferences{}, nil
	}
	return prefs, nil
}

func (s *profileService) SavePreferences(ctx context.Context, session domain.Session, prefs domain.Preferences) (*domain.Preferences, error) {
	if !session.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	normalized, err := domain.NormalizePreferences(prefs)
	if err != nil {
		return nil, err
	}
	if err := s.profiles.SavePreferences(ctx, session.UserID, normalized); err != nil {
		return nil, fmt.Errorf("save preferences: %w", err)
	}
	return &normalized, nil
}

type sessionResolver struct {
	profiles    ProfileRepository
	superadmins []string
}

// NewSessionResolver builds sessions from token claims plus the stored profile.
func NewSessionResolver(profiles ProfileRepository, superadmins []string) SessionResolver {
	return &sessionResolver{profiles: profiles, superadmins: superadmins}
}

func (r *sessionResolver) Resolve(ctx context.Context, userID, email, displayName string) (domain.Session, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.AnonymousSession(), nil
	}
	profile, err := r.profiles.FindProfile(ctx, userID)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load profile: %w", err)
	}
	return domain.NewSession(userID, email, displayName, profile, r.superadmins), nil
}
