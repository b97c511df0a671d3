package domain

import (
	"net/mail"
	"net/url"
	"strings"
)

// MaxPreferredStrengths caps the strengths a jobseeker may select.
const MaxPreferredStrengths = 3

var (
	CompanyStrengths = []string{
		"Flexible hours",
		"Early finish",
		"Consistent rota",
		"No late finishes",
		"Paid breaks",
		"Actual breaks",
		"Living wage",
		"Tips shared fairly",
		"Staff meals",
		"Free parking",
		"Paid holidays",
		"Inclusive and diverse team",
		"LGBTQ+ Friendly",
		"Female run",
		"Friendly team",
		"Team socials",
		"Sustainable sourcing",
	}
	JobRoles = []string{
		"Baker",
		"Chef",
		"Head Chef",
		"Barista",
		"Front of House",
		"Catering",
		"Kitchen Porter",
		"Butcher",
		"Breakfast Chef",
		"Pizza Chef",
		"Manager",
		"Other",
	}
	ContractTypes       = []string{"Full-time", "Part-time", "Contract", "Temporary"}
	LegacyContractTypes = []string{"Internship"}
	Shifts              = []string{"morning", "afternoon", "evening"}
	ApplyDisplays       = []string{"email", "url", "social"}
)

// canonical returns the vocabulary spelling of value, matching case-insensitively.
func canonical(vocabulary []string, value string) (string, bool) {
	value = strings.TrimSpace(value)
	for _, item := range vocabulary {
		if strings.EqualFold(item, value) {
			return item, true
		}
	}
	return "", false
}

// normalizeList は語彙に沿って値を正規化し、重複と空文字を取り除く。
func normalizeList(kind string, vocabulary []string, values []string, limit int) ([]string, error) {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, raw := range values {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		value, ok := canonical(vocabulary, raw)
		if !ok {
			return nil, Invalidf("invalid %s: %s", kind, strings.TrimSpace(raw))
		}
		if _, dup := seen[value]; dup {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	if limit > 0 && len(result) > limit {
		return nil, Invalidf("select at most %d %s", limit, kind)
	}
	return result, nil
}

// NormalizeStrengths validates company strength tags. limit <= 0 means no cap.
func NormalizeStrengths(values []string, limit int) ([]string, error) {
	return normalizeList("company strengths", CompanyStrengths, values, limit)
}

func NormalizeRoles(values []string) ([]string, error) {
	return normalizeList("roles", JobRoles, values, 0)
}

func NormalizeShifts(values []string) ([]string, error) {
	return normalizeList("shifts", Shifts, values, 0)
}

// NormalizeContractTypes accepts the current set; legacy values are accepted for filtering only.
func NormalizeContractTypes(values []string) ([]string, error) {
	return normalizeList("contract types", append(append([]string{}, ContractTypes...), LegacyContractTypes...), values, 0)
}

// NormalizeJobType validates a posting's contract type. Legacy values are not accepted on new posts.
func NormalizeJobType(value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return ContractTypes[0], nil
	}
	if v, ok := canonical(ContractTypes, value); ok {
		return v, nil
	}
	return "", Invalidf("invalid job type: %s", strings.TrimSpace(value))
}

func NormalizeApplyDisplay(value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return ApplyDisplays[0], nil
	}
	if v, ok := canonical(ApplyDisplays, value); ok {
		return v, nil
	}
	return "", Invalidf("invalid application display: %s", strings.TrimSpace(value))
}

// NormalizeEmail trims and validates an optional email address.
func NormalizeEmail(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if len(trimmed) > 254 {
		return "", Invalidf("email too long")
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return "", Invalidf("invalid email: %s", trimmed)
	}
	return trimmed, nil
}

// NormalizeURL trims and validates an optional absolute URL.
func NormalizeURL(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	parsed, err := url.ParseRequestURI(trimmed)
	if err != nil || parsed.Host == "" {
		return "", Invalidf("invalid URL: %s", trimmed)
	}
	return trimmed, nil
}

// NormalizeJob validates and canonicalises the content fields of a job.
func NormalizeJob(job Job) (Job, error) {
	return normalizeJob(job, "")
}

// NormalizeEditedJob is NormalizeJob for an edit of stored.
// 保存済みの旧契約種別 (Internship) は変更しない限りそのまま通す。
func NormalizeEditedJob(job, stored Job) (Job, error) {
	legacy, _ := canonical(LegacyContractTypes, stored.JobType)
	return normalizeJob(job, legacy)
}

func normalizeJob(job Job, keepLegacy string) (Job, error) {
	next := job.Clone()
	next.Title = strings.TrimSpace(job.Title)
	next.Company = strings.TrimSpace(job.Company)
	next.Location = strings.TrimSpace(job.Location)
	next.Postcode = strings.ToUpper(strings.TrimSpace(job.Postcode))
	next.Salary = strings.TrimSpace(job.Salary)
	next.WordOnTheStreet = strings.TrimSpace(job.WordOnTheStreet)
	if err := RequireContent(next); err != nil {
		return Job{}, err
	}

	var err error
	if keepLegacy != "" && strings.EqualFold(strings.TrimSpace(job.JobType), keepLegacy) {
		next.JobType = keepLegacy
	} else if next.JobType, err = NormalizeJobType(job.JobType); err != nil {
		return Job{}, err
	}
	if next.Roles, err = NormalizeRoles(job.Roles); err != nil {
		return Job{}, err
	}
	if len(next.Roles) == 0 {
		return Job{}, Invalidf("select at least one role")
	}
	if next.Shifts, err = NormalizeShifts(job.Shifts); err != nil {
		return Job{}, err
	}
	if next.CompanyStrengths, err = NormalizeStrengths(job.CompanyStrengths, 0); err != nil {
		return Job{}, err
	}
	if next.ApplyDisplay, err = NormalizeApplyDisplay(job.ApplyDisplay); err != nil {
		return Job{}, err
	}
	if next.ContactEmail, err = NormalizeEmail(job.ContactEmail); err != nil {
		return Job{}, err
	}
	if next.ApplicationURL, err = NormalizeURL(job.ApplicationURL); err != nil {
		return Job{}, err
	}
	if next.SocialURL, err = NormalizeURL(job.SocialURL); err != nil {
		return Job{}, err
	}
	switch next.ApplyDisplay {
	case "url":
		if next.ApplicationURL == "" {
			return Job{}, Invalidf("applicationUrl is required when applications go to a URL")
		}
	case "social":
		if next.SocialURL == "" {
			return Job{}, Invalidf("socialUrl is required when applications go to a social profile")
		}
	}
	return next, nil
}

// NormalizePreferences validates a jobseeker's personalisation settings.
func NormalizePreferences(p Preferences) (Preferences, error) {
	strengths, err := NormalizeStrengths(p.Strengths, MaxPreferredStrengths)
	if err != nil {
		return Preferences{}, err
	}
	roles, err := NormalizeRoles(p.Roles)
	if err != nil {
		return Preferences{}, err
	}
	contracts, err := NormalizeContractTypes(p.ContractTypes)
	if err != nil {
		return Preferences{}, err
	}
	return Preferences{
		Strengths:     strengths,
		Roles:         roles,
		ContractTypes: contracts,
		Location:      strings.TrimSpace(p.Location),
	}, nil
}
