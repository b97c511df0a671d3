package domain

import (
	"sort"
	"time"
)

// DefaultArchiveThresholdDays is the published lifetime of a job before it drops out of public listings.
const DefaultArchiveThresholdDays = 14

// IsArchived reports whether a published job has aged out at now.
// 基準時刻は createdAt/updatedAt の新しい方なので、Restore で updatedAt を更新すると掲載期間がリセットされる。
// タイムスタンプの無いジョブはアーカイブ扱いにしない。
func IsArchived(job Job, now time.Time, thresholdDays int) bool {
	if thresholdDays <= 0 {
		thresholdDays = DefaultArchiveThresholdDays
	}
	ref, ok := job.ActivityTime()
	if !ok {
		return false
	}
	return now.Sub(ref) > time.Duration(thresholdDays)*24*time.Hour
}

// CanView applies the visibility rule for a single job.
func CanView(job Job, session Session, now time.Time, thresholdDays int) bool {
	if session.IsAdmin() || session.Owns(job) {
		return true
	}
	return !job.Draft && !IsArchived(job, now, thresholdDays)
}

// VisibleTo drops jobs the viewer may not see, preserving order.
func VisibleTo(jobs []Job, session Session, now time.Time, thresholdDays int) []Job {
	result := make([]Job, 0, len(jobs))
	for _, job := range jobs {
		if CanView(job, session, now, thresholdDays) {
			result = append(result, job)
		}
	}
	return result
}

// SortByRecency orders jobs newest first by createdAt (updatedAt fallback). Ties keep input order.
func SortByRecency(jobs []Job) {
	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].RecencyTime().After(jobs[j].RecencyTime())
	})
}
