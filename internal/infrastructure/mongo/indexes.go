package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collections names every collection the service touches.
type Collections struct {
	Jobs                string
	Prefs               string
	SavedJobs           string
	JobMetrics          string
	PendingPosts        string
	FailedNotifications string
}

// EnsureIndexes creates the indexes the repositories rely on. CreateMany is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database, c Collections) error {
	plan := map[string][]mongo.IndexModel{
		c.Jobs: {
			{
				// ref は再試行上限後に衝突し得るため unique にしない。
				Keys:    bson.D{{Key: "ref", Value: 1}},
				Options: options.Index().SetName("idx_job_ref"),
			},
			{
				Keys:    bson.D{{Key: "draft", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("idx_job_draft_createdAt"),
			},
			{
				Keys:    bson.D{{Key: "createdBy", Value: 1}},
				Options: options.Index().SetName("idx_job_createdBy"),
			},
		},
		c.Prefs: {
			{
				Keys:    bson.D{{Key: "uid", Value: 1}, {Key: "kind", Value: 1}},
				Options: options.Index().SetName("uniq_prefs_uid_kind").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "kind", Value: 1}},
				Options: options.Index().SetName("idx_prefs_kind"),
			},
		},
		c.SavedJobs: {
			{
				Keys:    bson.D{{Key: "uid", Value: 1}, {Key: "jobId", Value: 1}},
				Options: options.Index().SetName("uniq_saved_uid_job").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "jobId", Value: 1}},
				Options: options.Index().SetName("idx_saved_job"),
			},
		},
		c.PendingPosts: {
			{
				Keys:    bson.D{{Key: "sessionId", Value: 1}},
				Options: options.Index().SetName("uniq_pending_session").SetUnique(true),
			},
		},
		c.FailedNotifications: {
			{
				Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("idx_failed_status_createdAt"),
			},
		},
	}
	for name, models := range plan {
		if name == "" {
			continue
		}
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}
