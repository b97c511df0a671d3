package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

// MetricsRepository keeps one counter document per job.
type MetricsRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewMetricsRepository(db *mongo.Database, collectionName string) *MetricsRepository {
	return &MetricsRepository{collection: db.Collection(collectionName), now: time.Now}
}

// Increment applies an atomic $inc, creating the document on first use.
func (r *MetricsRepository) Increment(ctx context.Context, jobID string, kind domain.MetricKind, delta int64) error {
	switch kind {
	case domain.MetricViews, domain.MetricSaves, domain.MetricApplies:
	default:
		return fmt.Errorf("unknown metric %q", kind)
	}
	update := bson.M{
		"$inc": bson.M{string(kind): delta},
		"$set": bson.M{"updatedAt": r.now().UTC()},
	}
	_, err := r.collection.UpdateByID(ctx, jobID, update, options.Update().SetUpsert(true))
	return err
}

func (r *MetricsRepository) Find(ctx context.Context, jobID string) (*domain.JobMetrics, error) {
	var doc JobMetricsDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": jobID}).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	metrics := mapMetrics(doc)
	return &metrics, nil
}

func (r *MetricsRepository) Delete(ctx context.Context, jobID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": jobID})
	return err
}
