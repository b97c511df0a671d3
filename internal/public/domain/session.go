package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role is the document-stored account role.
type Role string

const (
	RoleJobseeker Role = "jobseeker"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

// ParseRole converts a raw string to a Role, returning an error for unknown values.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleJobseeker, RoleEmployer, RoleAdmin:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// ResolveRole は profile の role を解決する。未設定・不明な値は jobseeker 扱い。
func ResolveRole(profile *Profile) Role {
	if profile == nil {
		return RoleJobseeker
	}
	role, err := ParseRole(string(profile.Role))
	if err != nil {
		return RoleJobseeker
	}
	return role
}

// IsSuperadminEmail reports whether email is on the configured allowlist.
func IsSuperadminEmail(email string, allowlist []string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	for _, allowed := range allowlist {
		if strings.EqualFold(strings.TrimSpace(allowed), email) {
			return true
		}
	}
	return false
}

// Session is the per-request viewer, built from the verified token and the stored profile.
// 匿名閲覧者は UserID が空の Session で表現する。
type Session struct {
	UserID      string
	Email       string
	DisplayName string
	Role        Role
	Superadmin  bool
}

// AnonymousSession returns the viewer used when no credentials were sent.
func AnonymousSession() Session {
	return Session{Role: RoleJobseeker}
}

// NewSession resolves the role purely from profile and allowlist.
// email must be the verified token claim. Superadmin is decided from it alone;
// the stored profile email is user-editable and only fills the display fields.
func NewSession(userID, email, displayName string, profile *Profile, superadmins []string) Session {
	superadmin := IsSuperadminEmail(email, superadmins)
	if profile != nil {
		if strings.TrimSpace(email) == "" {
			email = profile.Email
		}
		if strings.TrimSpace(displayName) == "" {
			displayName = profile.DisplayName
		}
	}
	return Session{
		UserID:      strings.TrimSpace(userID),
		Email:       strings.TrimSpace(email),
		DisplayName: strings.TrimSpace(displayName),
		Role:        ResolveRole(profile),
		Superadmin:  superadmin,
	}
}

func (s Session) Authenticated() bool {
	return s.UserID != ""
}

// IsAdmin is true for the stored admin role and for superadmins.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin || s.Superadmin
}

func (s Session) Owns(job Job) bool {
	return s.UserID != "" && job.CreatedBy == s.UserID
}

// Profile is the stored account record (prefs/profile).
type Profile struct {
	UserID           string
	DisplayName      string
	Email            string
	Role             Role
	CompanyName      string
	CompanyLocation  string
	CompanyPostcode  string
	ApplicationEmail string
	InstagramURL     string
	CreatedAt        *time.Time
	UpdatedAt        *time.Time
}
