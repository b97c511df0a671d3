package application

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	admindomain "github.com/Stuart1162/fizzyjuice/internal/admin/domain"
	publicdomain "github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

const strengthsCacheTTL = 5 * time.Minute

type userService struct {
	users  UserDirectory
	jobs   JobRepository
	saved  SavedJobCleaner
	logger *log.Logger
}

func NewUserService(users UserDirectory, jobs JobRepository, saved SavedJobCleaner, logger *log.Logger) UserService {
	return &userService{users: users, jobs: jobs, saved: saved, logger: logger}
}

func (s *userService) List(ctx context.Context, session publicdomain.Session, filter admindomain.RoleFilter) (*admindomain.UserListing, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}
	profiles, err := s.users.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}
	jobs, err := s.jobs.FindAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	listing := admindomain.BuildUserListing(profiles, jobs, filter)
	return &listing, nil
}

// Delete removes a user's documents. Jobs the user created stay on the board.
func (s *userService) Delete(ctx context.Context, session publicdomain.Session, userID string) error {
	if err := requireSuperadmin(session); err != nil {
		return err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return publicdomain.Invalidf("user id is required")
	}
	if userID == session.UserID {
		return publicdomain.Invalidf("superadmins cannot delete their own account here")
	}
	existed, err := s.users.DeleteUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !existed {
		return publicdomain.ErrNotFound
	}
	if s.saved != nil {
		if err := s.saved.DeleteByUser(ctx, userID); err != nil && s.logger != nil {
			s.logger.Printf("saved job cleanup failed uid=%s: %v", userID, err)
		}
	}
	if s.logger != nil {
		s.logger.Printf("user deleted uid=%s by=%s", userID, session.UserID)
	}
	return nil
}

type analyticsService struct {
	users  UserDirectory
	cache  AnalyticsCache
	logger *log.Logger
	now    func() time.Time
}

// NewAnalyticsService wires strength analytics. cache may be nil.
func NewAnalyticsService(users UserDirectory, cache AnalyticsCache, logger *log.Logger, now func() time.Time) AnalyticsService {
	if now == nil {
		now = time.Now
	}
	return &analyticsService{users: users, cache: cache, logger: logger, now: now}
}

func (s *analyticsService) Strengths(ctx context.Context, session publicdomain.Session) (*admindomain.StrengthStats, error) {
	if err := requireSuperadmin(session); err != nil {
		return nil, err
	}
	if s.cache != nil {
		cached, ok, err := s.cache.GetStrengths(ctx)
		if err != nil {
			s.logf("analytics cache read failed: %v", err)
		} else if ok {
			return cached, nil
		}
	}

	prefs, err := s.users.ListSeekerPreferences(ctx)
	if err != nil {
		return nil, err
	}
	stats := admindomain.TallyStrengths(prefs, s.now().UTC())
	if s.cache != nil {
		if err := s.cache.SetStrengths(ctx, stats, strengthsCacheTTL); err != nil {
			s.logf("analytics cache write failed: %v", err)
		}
	}
	return &stats, nil
}

func (s *analyticsService) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
