package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const failedNotificationStatus = "failed"

// FailedNotificationRepository は送信失敗した通知を監査用に残す。
type FailedNotificationRepository struct {
	collection *mongo.Collection
}

func NewFailedNotificationRepository(db *mongo.Database, collectionName string) *FailedNotificationRepository {
	return &FailedNotificationRepository{collection: db.Collection(collectionName)}
}

// Record stores one failed send.
func (r *FailedNotificationRepository) Record(ctx context.Context, kind, subject string, recipients []string, sendErr error) error {
	doc := FailedNotificationDocument{
		ID:         primitive.NewObjectID(),
		Kind:       kind,
		Subject:    subject,
		Recipients: append([]string(nil), recipients...),
		Status:     failedNotificationStatus,
		CreatedAt:  time.Now().UTC(),
	}
	if sendErr != nil {
		doc.Error = sendErr.Error()
	}
	_, err := r.collection.InsertOne(ctx, doc)
	return err
}
