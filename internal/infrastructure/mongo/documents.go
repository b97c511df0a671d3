package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

const (
	prefsKindProfile   = "profile"
	prefsKindJobseeker = "jobseeker"
)

// JobDocument は MongoDB 上での求人スキーマを Go 構造体として表現したもの。
type JobDocument struct {
	ID               primitive.ObjectID `bson:"_id"`
	Title            string             `bson:"title"`
	Company          string             `bson:"company"`
	Location         string             `bson:"location"`
	Postcode         string             `bson:"postcode,omitempty"`
	Description      string             `bson:"description"`
	JobType          string             `bson:"jobType,omitempty"`
	Salary           string             `bson:"salary,omitempty"`
	Roles            []string           `bson:"roles,omitempty"`
	Shifts           []string           `bson:"shifts,omitempty"`
	CompanyStrengths []string           `bson:"companyStrengths,omitempty"`
	WordOnTheStreet  string             `bson:"wordOnTheStreet,omitempty"`
	WorkArrangement  string             `bson:"workArrangement,omitempty"`
	Skills           []string           `bson:"skills,omitempty"`
	Requirements     []string           `bson:"requirements,omitempty"`
	ApplyDisplay     string             `bson:"applyDisplay,omitempty"`
	ContactEmail     string             `bson:"contactEmail"`
	ApplicationURL   string             `bson:"applicationUrl,omitempty"`
	SocialURL        string             `bson:"socialUrl,omitempty"`
	Draft            bool               `bson:"draft"`
	CreatedBy        string             `bson:"createdBy,omitempty"`
	Ref              string             `bson:"ref,omitempty"`
	CreatedAt        *time.Time         `bson:"createdAt,omitempty"`
	UpdatedAt        *time.Time         `bson:"updatedAt,omitempty"`
}

// PrefsDocument は users/{uid}/prefs/{kind} を 1 コレクションにまとめたもの。kind ごとに使うフィールドが異なる。
type PrefsDocument struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	UserID           string             `bson:"uid"`
	Kind             string             `bson:"kind"`
	DisplayName      string             `bson:"displayName,omitempty"`
	Email            string             `bson:"email,omitempty"`
	Role             string             `bson:"role,omitempty"`
	CompanyName      string             `bson:"companyName,omitempty"`
	CompanyLocation  string             `bson:"companyLocation,omitempty"`
	CompanyPostcode  string             `bson:"companyPostcode,omitempty"`
	ApplicationEmail string             `bson:"applicationEmail,omitempty"`
	InstagramURL     string             `bson:"instagramUrl,omitempty"`
	CompanyStrengths []string           `bson:"companyStrengths,omitempty"`
	PrefRoles        []string           `bson:"prefRoles,omitempty"`
	PrefContracts    []string           `bson:"prefContractTypes,omitempty"`
	PrefLocation     string             `bson:"prefLocation,omitempty"`
	CreatedAt        *time.Time         `bson:"createdAt,omitempty"`
	UpdatedAt        *time.Time         `bson:"updatedAt,omitempty"`
}

// SavedJobDocument は保存済み求人のスナップショット。
type SavedJobDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       string             `bson:"uid"`
	JobID        string             `bson:"jobId"`
	Title        string             `bson:"title,omitempty"`
	Company      string             `bson:"company,omitempty"`
	Location     string             `bson:"location,omitempty"`
	JobCreatedAt *time.Time         `bson:"jobCreatedAt,omitempty"`
	Saved        bool               `bson:"saved"`
	SavedAt      *time.Time         `bson:"savedAt,omitempty"`
	Applied      bool               `bson:"applied"`
	AppliedAt    *time.Time         `bson:"appliedAt,omitempty"`
}

// JobMetricsDocument uses the job id as _id.
type JobMetricsDocument struct {
	JobID     string     `bson:"_id"`
	Views     int64      `bson:"views"`
	Saves     int64      `bson:"saves"`
	Applies   int64      `bson:"applies"`
	UpdatedAt *time.Time `bson:"updatedAt,omitempty"`
}

// PendingPostDocument は決済待ちの求人下書き。
type PendingPostDocument struct {
	SessionID string      `bson:"sessionId"`
	UserID    string      `bson:"uid"`
	Job       JobDocument `bson:"job"`
	Status    string      `bson:"status"`
	JobID     string      `bson:"jobId,omitempty"`
	CreatedAt time.Time   `bson:"createdAt"`
	UpdatedAt time.Time   `bson:"updatedAt"`
}

// FailedNotificationDocument は送信に失敗した通知の監査ログ。再送はしない。
type FailedNotificationDocument struct {
	ID         primitive.ObjectID `bson:"_id"`
	Kind       string             `bson:"kind"`
	Subject    string             `bson:"subject"`
	Recipients []string           `bson:"recipients"`
	Error      string             `bson:"error"`
	Status     string             `bson:"status"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

func toJobDocument(job domain.Job) JobDocument {
	doc := JobDocument{
		Title:            job.Title,
		Company:          job.Company,
		Location:         job.Location,
		Postcode:         job.Postcode,
		Description:      job.Description,
		JobType:          job.JobType,
		Salary:           job.Salary,
		Roles:            append([]string(nil), job.Roles...),
		Shifts:           append([]string(nil), job.Shifts...),
		CompanyStrengths: append([]string(nil), job.CompanyStrengths...),
		WordOnTheStreet:  job.WordOnTheStreet,
		WorkArrangement:  job.WorkArrangement,
		Skills:           append([]string(nil), job.Skills...),
		Requirements:     append([]string(nil), job.Requirements...),
		ApplyDisplay:     job.ApplyDisplay,
		ContactEmail:     job.ContactEmail,
		ApplicationURL:   job.ApplicationURL,
		SocialURL:        job.SocialURL,
		Draft:            job.Draft,
		CreatedBy:        job.CreatedBy,
		Ref:              job.Ref,
		CreatedAt:        job.CreatedAt,
		UpdatedAt:        job.UpdatedAt,
	}
	if id, err := primitive.ObjectIDFromHex(job.ID); err == nil {
		doc.ID = id
	}
	return doc
}

func mapJob(doc JobDocument) domain.Job {
	job := domain.Job{
		Title:            doc.Title,
		Company:          doc.Company,
		Location:         doc.Location,
		Postcode:         doc.Postcode,
		Description:      doc.Description,
		JobType:          doc.JobType,
		Salary:           doc.Salary,
		Roles:            doc.Roles,
		Shifts:           doc.Shifts,
		CompanyStrengths: doc.CompanyStrengths,
		WordOnTheStreet:  doc.WordOnTheStreet,
		WorkArrangement:  doc.WorkArrangement,
		Skills:           doc.Skills,
		Requirements:     doc.Requirements,
		ApplyDisplay:     doc.ApplyDisplay,
		ContactEmail:     doc.ContactEmail,
		ApplicationURL:   doc.ApplicationURL,
		SocialURL:        doc.SocialURL,
		Draft:            doc.Draft,
		CreatedBy:        doc.CreatedBy,
		Ref:              doc.Ref,
		CreatedAt:        doc.CreatedAt,
		UpdatedAt:        doc.UpdatedAt,
	}
	if !doc.ID.IsZero() {
		job.ID = doc.ID.Hex()
	}
	return job
}

func mapProfile(doc PrefsDocument) domain.Profile {
	return domain.Profile{
		UserID:           doc.UserID,
		DisplayName:      doc.DisplayName,
		Email:            doc.Email,
		Role:             domain.Role(doc.Role),
		CompanyName:      doc.CompanyName,
		CompanyLocation:  doc.CompanyLocation,
		CompanyPostcode:  doc.CompanyPostcode,
		ApplicationEmail: doc.ApplicationEmail,
		InstagramURL:     doc.InstagramURL,
		CreatedAt:        doc.CreatedAt,
		UpdatedAt:        doc.UpdatedAt,
	}
}

func mapPreferences(doc PrefsDocument) domain.Preferences {
	return domain.Preferences{
		Strengths:     doc.CompanyStrengths,
		Roles:         doc.PrefRoles,
		ContractTypes: doc.PrefContracts,
		Location:      doc.PrefLocation,
	}
}

func mapSavedJob(doc SavedJobDocument) domain.SavedJob {
	return domain.SavedJob{
		UserID:       doc.UserID,
		JobID:        doc.JobID,
		Title:        doc.Title,
		Company:      doc.Company,
		Location:     doc.Location,
		JobCreatedAt: doc.JobCreatedAt,
		Saved:        doc.Saved,
		SavedAt:      doc.SavedAt,
		Applied:      doc.Applied,
		AppliedAt:    doc.AppliedAt,
		Exists:       true,
	}
}

func mapMetrics(doc JobMetricsDocument) domain.JobMetrics {
	return domain.JobMetrics{
		JobID:     doc.JobID,
		Views:     doc.Views,
		Saves:     doc.Saves,
		Applies:   doc.Applies,
		UpdatedAt: doc.UpdatedAt,
	}
}

func mapPendingPost(doc PendingPostDocument) domain.PendingPost {
	return domain.PendingPost{
		SessionID: doc.SessionID,
		UserID:    doc.UserID,
		Job:       mapJob(doc.Job),
		Status:    domain.PendingPostStatus(doc.Status),
		JobID:     doc.JobID,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
