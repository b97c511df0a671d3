package public

import (
	"time"

	"github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

// jobRequest is the create/edit body. Required fields are checked by the domain.
type jobRequest struct {
	Title            string   `json:"title" validate:"max=200"`
	Company          string   `json:"company" validate:"max=200"`
	Location         string   `json:"location" validate:"max=200"`
	Postcode         string   `json:"postcode" validate:"max=20"`
	Description      string   `json:"description" validate:"max=20000"`
	JobType          string   `json:"jobType" validate:"contract"`
	Salary           string   `json:"salary" validate:"max=200"`
	Roles            []string `json:"roles" validate:"max=12,dive,jobrole"`
	Shifts           []string `json:"shifts" validate:"max=3,dive,shift"`
	CompanyStrengths []string `json:"companyStrengths" validate:"max=17,dive,strength"`
	WordOnTheStreet  string   `json:"wordOnTheStreet" validate:"max=2000"`
	WorkArrangement  string   `json:"workArrangement" validate:"max=200"`
	Skills           []string `json:"skills" validate:"max=50,dive,max=100"`
	Requirements     []string `json:"requirements" validate:"max=50,dive,max=300"`
	ApplyDisplay     string   `json:"applyDisplay" validate:"applydisplay"`
	ContactEmail     string   `json:"contactEmail" validate:"max=254"`
	ApplicationURL   string   `json:"applicationUrl" validate:"max=2000"`
	SocialURL        string   `json:"socialUrl" validate:"max=2000"`
}

func (req jobRequest) toDomain() domain.Job {
	return domain.Job{
		Title:            req.Title,
		Company:          req.Company,
		Location:         req.Location,
		Postcode:         req.Postcode,
		Description:      req.Description,
		JobType:          req.JobType,
		Salary:           req.Salary,
		Roles:            req.Roles,
		Shifts:           req.Shifts,
		CompanyStrengths: req.CompanyStrengths,
		WordOnTheStreet:  req.WordOnTheStreet,
		WorkArrangement:  req.WorkArrangement,
		Skills:           req.Skills,
		Requirements:     req.Requirements,
		ApplyDisplay:     req.ApplyDisplay,
		ContactEmail:     req.ContactEmail,
		ApplicationURL:   req.ApplicationURL,
		SocialURL:        req.SocialURL,
	}
}

type jobResponse struct {
	ID               string     `json:"id"`
	Ref              string     `json:"ref,omitempty"`
	Title            string     `json:"title"`
	Company          string     `json:"company"`
	Location         string     `json:"location"`
	Postcode         string     `json:"postcode,omitempty"`
	Description      string     `json:"description"`
	JobType          string     `json:"jobType,omitempty"`
	Salary           string     `json:"salary,omitempty"`
	Roles            []string   `json:"roles"`
	Shifts           []string   `json:"shifts"`
	CompanyStrengths []string   `json:"companyStrengths"`
	WordOnTheStreet  string     `json:"wordOnTheStreet,omitempty"`
	WorkArrangement  string     `json:"workArrangement,omitempty"`
	Skills           []string   `json:"skills"`
	Requirements     []string   `json:"requirements"`
	ApplyDisplay     string     `json:"applyDisplay,omitempty"`
	ContactEmail     string     `json:"contactEmail"`
	ApplicationURL   string     `json:"applicationUrl,omitempty"`
	SocialURL        string     `json:"socialUrl,omitempty"`
	Draft            bool       `json:"draft"`
	Status           string     `json:"status"`
	CreatedBy        string     `json:"createdBy,omitempty"`
	CreatedAt        *time.Time `json:"createdAt,omitempty"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"`
}

type jobListResponse struct {
	Items []jobResponse `json:"items"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
	Total int           `json:"total"`
}

type rankedJobResponse struct {
	Job        jobResponse `json:"job"`
	MatchCount int         `json:"matchCount"`
}

type savedJobResponse struct {
	JobID        string     `json:"jobId"`
	Title        string     `json:"title"`
	Company      string     `json:"company"`
	Location     string     `json:"location"`
	JobCreatedAt *time.Time `json:"jobCreatedAt,omitempty"`
	Saved        bool       `json:"saved"`
	SavedAt      *time.Time `json:"savedAt,omitempty"`
	Applied      bool       `json:"applied"`
	AppliedAt    *time.Time `json:"appliedAt,omitempty"`
	Exists       bool       `json:"exists"`
}

type appliedRequest struct {
	Applied *bool `json:"applied" validate:"required"`
}

type profileRequest struct {
	DisplayName      string `json:"displayName" validate:"max=100"`
	Email            string `json:"email" validate:"max=254"`
	Role             string `json:"role" validate:"omitempty,oneof=jobseeker employer"`
	CompanyName      string `json:"companyName" validate:"max=200"`
	CompanyLocation  string `json:"companyLocation" validate:"max=200"`
	CompanyPostcode  string `json:"companyPostcode" validate:"max=20"`
	ApplicationEmail string `json:"applicationEmail" validate:"max=254"`
	InstagramURL     string `json:"instagramUrl" validate:"max=2000"`
	Password         string `json:"password" validate:"max=200"`
	ConfirmPassword  string `json:"confirmPassword" validate:"max=200"`
}

type profileResponse struct {
	UserID           string     `json:"uid"`
	DisplayName      string     `json:"displayName,omitempty"`
	Email            string     `json:"email,omitempty"`
	Role             string     `json:"role"`
	CompanyName      string     `json:"companyName,omitempty"`
	CompanyLocation  string     `json:"companyLocation,omitempty"`
	CompanyPostcode  string     `json:"companyPostcode,omitempty"`
	ApplicationEmail string     `json:"applicationEmail,omitempty"`
	InstagramURL     string     `json:"instagramUrl,omitempty"`
	CreatedAt        *time.Time `json:"createdAt,omitempty"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"`
}

type preferencesPayload struct {
	Strengths     []string `json:"strengths" validate:"max=3,dive,strength"`
	Roles         []string `json:"roles" validate:"max=12,dive,jobrole"`
	ContractTypes []string `json:"contractTypes" validate:"max=5,dive,contract"`
	Location      string   `json:"location" validate:"max=200"`
}

type checkoutRequest struct {
	Title      string `json:"title" validate:"max=200"`
	SuccessURL string `json:"successUrl" validate:"omitempty,url,max=2000"`
	CancelURL  string `json:"cancelUrl" validate:"omitempty,url,max=2000"`
	Currency   string `json:"currency" validate:"omitempty,len=3,alpha"`
}

type checkoutResponse struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}

type paidPostRequest struct {
	Job        jobRequest `json:"job"`
	SuccessURL string     `json:"successUrl" validate:"omitempty,url,max=2000"`
	CancelURL  string     `json:"cancelUrl" validate:"omitempty,url,max=2000"`
}

type paidPostCompleteResponse struct {
	Status string      `json:"status"`
	Job    jobResponse `json:"job"`
}
