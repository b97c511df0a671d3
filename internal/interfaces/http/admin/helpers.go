package admin

import (
	"time"

	admindomain "github.com/Stuart1162/fizzyjuice/internal/admin/domain"
	publicdomain "github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// adminJobDomainToResponse は Job を管理画面用レスポンスへ変換する。
func adminJobDomainToResponse(job publicdomain.Job, now time.Time, archiveDays int) adminJobResponse {
	return adminJobResponse{
		ID:               job.ID,
		Ref:              job.Ref,
		Title:            job.Title,
		Company:          job.Company,
		Location:         job.Location,
		JobType:          job.JobType,
		Roles:            nonNil(job.Roles),
		CompanyStrengths: nonNil(job.CompanyStrengths),
		ContactEmail:     job.ContactEmail,
		Draft:            job.Draft,
		Status:           string(publicdomain.StatusOf(job, now, archiveDays)),
		CreatedBy:        job.CreatedBy,
		CreatedAt:        job.CreatedAt,
		UpdatedAt:        job.UpdatedAt,
	}
}

func userOverviewToResponse(user admindomain.UserOverview) userResponse {
	profile := user.Profile
	return userResponse{
		UserID:      profile.UserID,
		Email:       profile.Email,
		DisplayName: profile.DisplayName,
		Role:        string(profile.Role),
		CompanyName: profile.CompanyName,
		JobRefs:     nonNil(user.JobRefs),
		CreatedAt:   profile.CreatedAt,
	}
}
