package admin

import "time"

type adminJobResponse struct {
	ID               string     `json:"id"`
	Ref              string     `json:"ref,omitempty"`
	Title            string     `json:"title"`
	Company          string     `json:"company"`
	Location         string     `json:"location"`
	JobType          string     `json:"jobType,omitempty"`
	Roles            []string   `json:"roles"`
	CompanyStrengths []string   `json:"companyStrengths"`
	ContactEmail     string     `json:"contactEmail"`
	Draft            bool       `json:"draft"`
	Status           string     `json:"status"`
	CreatedBy        string     `json:"createdBy,omitempty"`
	CreatedAt        *time.Time `json:"createdAt,omitempty"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"`
}

type adminJobListResponse struct {
	Items []adminJobResponse `json:"items"`
	View  string             `json:"view"`
	Total int                `json:"total"`
}

type metricsResponse struct {
	Views   int64 `json:"views"`
	Saves   int64 `json:"saves"`
	Applies int64 `json:"applies"`
}

type jobReportResponse struct {
	Job     adminJobResponse `json:"job"`
	Metrics metricsResponse  `json:"metrics"`
}

type userResponse struct {
	UserID      string     `json:"uid"`
	Email       string     `json:"email,omitempty"`
	DisplayName string     `json:"displayName,omitempty"`
	Role        string     `json:"role"`
	CompanyName string     `json:"companyName,omitempty"`
	JobRefs     []string   `json:"jobRefs"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

type roleCountsResponse struct {
	Jobseekers int `json:"jobseekers"`
	Employers  int `json:"employers"`
	Admins     int `json:"admins"`
	Total      int `json:"total"`
}

type userListResponse struct {
	Items  []userResponse     `json:"items"`
	Counts roleCountsResponse `json:"counts"`
	Role   string             `json:"role"`
}
