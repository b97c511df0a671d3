package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

// SavedJobRepository implements the per-user saved list with a unique {uid, jobId} key.
type SavedJobRepository struct {
	collection *mongo.Collection
}

func NewSavedJobRepository(db *mongo.Database, collectionName string) *SavedJobRepository {
	return &SavedJobRepository{collection: db.Collection(collectionName)}
}

func (r *SavedJobRepository) List(ctx context.Context, userID string) ([]domain.SavedJob, error) {
	opts := options.Find().SetSort(bson.D{{Key: "savedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"uid": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]domain.SavedJob, 0)
	for cursor.Next(ctx) {
		var doc SavedJobDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		items = append(items, mapSavedJob(doc))
	}
	return items, cursor.Err()
}

func (r *SavedJobRepository) Find(ctx context.Context, userID, jobID string) (*domain.SavedJob, error) {
	var doc SavedJobDocument
	if err := r.collection.FindOne(ctx, bson.M{"uid": userID, "jobId": jobID}).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	item := mapSavedJob(doc)
	return &item, nil
}

// Save upserts the snapshot. The applied flag is left untouched.
func (r *SavedJobRepository) Save(ctx context.Context, snapshot domain.SavedJob, at time.Time) error {
	set := bson.M{
		"title":    snapshot.Title,
		"company":  snapshot.Company,
		"location": snapshot.Location,
		"saved":    true,
		"savedAt":  at,
	}
	if snapshot.JobCreatedAt != nil {
		set["jobCreatedAt"] = *snapshot.JobCreatedAt
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"applied": false},
	}
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"uid": snapshot.UserID, "jobId": snapshot.JobID},
		update,
		options.Update().SetUpsert(true),
	)
	return err
}

// Remove deletes the entry. Returns true if something was removed.
func (r *SavedJobRepository) Remove(ctx context.Context, userID, jobID string) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"uid": userID, "jobId": jobID})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

// SetApplied updates the applied flag of an existing entry and reports whether it changed.
// 状態が変わるときだけ更新するので appliedAt は最初に応募した時刻のまま残る。
func (r *SavedJobRepository) SetApplied(ctx context.Context, userID, jobID string, applied bool, at time.Time) (bool, error) {
	filter := bson.M{"uid": userID, "jobId": jobID, "applied": bson.M{"$ne": applied}}
	update := bson.M{"$set": bson.M{"applied": true, "appliedAt": at}}
	if !applied {
		update = bson.M{"$set": bson.M{"applied": false}, "$unset": bson.M{"appliedAt": ""}}
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	if result.MatchedCount > 0 {
		return true, nil
	}
	count, err := r.collection.CountDocuments(ctx, bson.M{"uid": userID, "jobId": jobID}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	if count == 0 {
		return false, domain.ErrNotFound
	}
	return false, nil
}

func (r *SavedJobRepository) DeleteByJob(ctx context.Context, jobID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"jobId": jobID})
	return err
}

func (r *SavedJobRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"uid": userID})
	return err
}
