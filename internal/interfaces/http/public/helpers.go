package public

import (
	"strings"
	"time"

	publicapp "github.com/Stuart1162/fizzyjuice/internal/public/application"
	"github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// buildJobResponse は Job ドメインモデルを DTO に変換する。status は now 時点で導出する。
func buildJobResponse(job domain.Job, now time.Time, archiveDays int) jobResponse {
	return jobResponse{
		ID:               job.ID,
		Ref:              job.Ref,
		Title:            job.Title,
		Company:          job.Company,
		Location:         job.Location,
		Postcode:         job.Postcode,
		Description:      job.Description,
		JobType:          job.JobType,
		Salary:           job.Salary,
		Roles:            nonNil(job.Roles),
		Shifts:           nonNil(job.Shifts),
		CompanyStrengths: nonNil(job.CompanyStrengths),
		WordOnTheStreet:  job.WordOnTheStreet,
		WorkArrangement:  job.WorkArrangement,
		Skills:           nonNil(job.Skills),
		Requirements:     nonNil(job.Requirements),
		ApplyDisplay:     job.ApplyDisplay,
		ContactEmail:     job.ContactEmail,
		ApplicationURL:   job.ApplicationURL,
		SocialURL:        job.SocialURL,
		Draft:            job.Draft,
		Status:           string(domain.StatusOf(job, now, archiveDays)),
		CreatedBy:        job.CreatedBy,
		CreatedAt:        job.CreatedAt,
		UpdatedAt:        job.UpdatedAt,
	}
}

func (h *Handler) jobResponses(jobs []domain.Job) []jobResponse {
	now := h.now()
	items := make([]jobResponse, 0, len(jobs))
	for _, job := range jobs {
		items = append(items, buildJobResponse(job, now, h.archiveDays))
	}
	return items
}

func buildSavedJobResponse(saved domain.SavedJob) savedJobResponse {
	return savedJobResponse{
		JobID:        saved.JobID,
		Title:        saved.Title,
		Company:      saved.Company,
		Location:     saved.Location,
		JobCreatedAt: saved.JobCreatedAt,
		Saved:        saved.Saved,
		SavedAt:      saved.SavedAt,
		Applied:      saved.Applied,
		AppliedAt:    saved.AppliedAt,
		Exists:       saved.Exists,
	}
}

func buildProfileResponse(profile domain.Profile) profileResponse {
	return profileResponse{
		UserID:           profile.UserID,
		DisplayName:      profile.DisplayName,
		Email:            profile.Email,
		Role:             string(domain.ResolveRole(&profile)),
		CompanyName:      profile.CompanyName,
		CompanyLocation:  profile.CompanyLocation,
		CompanyPostcode:  profile.CompanyPostcode,
		ApplicationEmail: profile.ApplicationEmail,
		InstagramURL:     profile.InstagramURL,
		CreatedAt:        profile.CreatedAt,
		UpdatedAt:        profile.UpdatedAt,
	}
}

func (req profileRequest) toCommand() publicapp.UpdateProfileCommand {
	return publicapp.UpdateProfileCommand{
		DisplayName:      req.DisplayName,
		Email:            req.Email,
		Role:             req.Role,
		CompanyName:      req.CompanyName,
		CompanyLocation:  req.CompanyLocation,
		CompanyPostcode:  req.CompanyPostcode,
		ApplicationEmail: req.ApplicationEmail,
		InstagramURL:     req.InstagramURL,
		Password:         req.Password,
		ConfirmPassword:  req.ConfirmPassword,
	}
}

func buildPreferencesPayload(prefs domain.Preferences) preferencesPayload {
	return preferencesPayload{
		Strengths:     nonNil(prefs.Strengths),
		Roles:         nonNil(prefs.Roles),
		ContractTypes: nonNil(prefs.ContractTypes),
		Location:      prefs.Location,
	}
}

func (p preferencesPayload) toDomain() domain.Preferences {
	return domain.Preferences{
		Strengths:     p.Strengths,
		Roles:         p.Roles,
		ContractTypes: p.ContractTypes,
		Location:      p.Location,
	}
}

func (req checkoutRequest) toCommand() publicapp.CheckoutCommand {
	return publicapp.CheckoutCommand{
		Title:      req.Title,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
		Currency:   req.Currency,
	}
}

func trimParam(value string) string {
	return strings.TrimSpace(value)
}
