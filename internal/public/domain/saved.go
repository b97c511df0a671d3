package domain

import "time"

// SavedJob is a per-user denormalised snapshot of a job (users/{uid}/savedJobs/{jobId}).
// 元の求人が削除されても残り得るため、Exists で参照先の有無を表す。
type SavedJob struct {
	UserID       string
	JobID        string
	Title        string
	Company      string
	Location     string
	JobCreatedAt *time.Time
	Saved        bool
	SavedAt      *time.Time
	Applied      bool
	AppliedAt    *time.Time
	Exists       bool
}

// SnapshotOf captures the listing fields kept with a saved job.
func SnapshotOf(userID string, job Job) SavedJob {
	return SavedJob{
		UserID:       userID,
		JobID:        job.ID,
		Title:        job.Title,
		Company:      job.Company,
		Location:     job.Location,
		JobCreatedAt: job.CreatedAt,
		Exists:       true,
	}
}

// MetricKind names a counter on the job metrics document.
type MetricKind string

const (
	MetricViews   MetricKind = "views"
	MetricSaves   MetricKind = "saves"
	MetricApplies MetricKind = "applies"
)

// JobMetrics holds engagement counters for a job. Counters are not deduplicated per user.
type JobMetrics struct {
	JobID     string
	Views     int64
	Saves     int64
	Applies   int64
	UpdatedAt *time.Time
}
