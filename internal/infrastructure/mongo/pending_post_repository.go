package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

// PendingPostRepository holds paid-post drafts keyed by checkout session id.
type PendingPostRepository struct {
	collection *mongo.Collection
}

func NewPendingPostRepository(db *mongo.Database, collectionName string) *PendingPostRepository {
	return &PendingPostRepository{collection: db.Collection(collectionName)}
}

func (r *PendingPostRepository) Create(ctx context.Context, post *domain.PendingPost) error {
	doc := PendingPostDocument{
		SessionID: post.SessionID,
		UserID:    post.UserID,
		Job:       toJobDocument(post.Job),
		Status:    string(post.Status),
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
	_, err := r.collection.InsertOne(ctx, doc)
	return err
}

func (r *PendingPostRepository) Find(ctx context.Context, sessionID string) (*domain.PendingPost, error) {
	var doc PendingPostDocument
	if err := r.collection.FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	post := mapPendingPost(doc)
	return &post, nil
}

// Claim は awaiting_payment → created を FindOneAndUpdate で一度だけ成功させる。
func (r *PendingPostRepository) Claim(ctx context.Context, sessionID string, at time.Time) (*domain.PendingPost, error) {
	filter := bson.M{"sessionId": sessionID, "status": string(domain.PendingAwaitingPayment)}
	update := bson.M{"$set": bson.M{"status": string(domain.PendingCreated), "updatedAt": at}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc PendingPostDocument
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	post := mapPendingPost(doc)
	return &post, nil
}

func (r *PendingPostRepository) AttachJob(ctx context.Context, sessionID, jobID string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"sessionId": sessionID}, bson.M{"$set": bson.M{"jobId": jobID}})
	return err
}

// Release hands a claimed post back when the job insert failed, so the poster can retry.
func (r *PendingPostRepository) Release(ctx context.Context, sessionID string) error {
	filter := bson.M{"sessionId": sessionID, "status": string(domain.PendingCreated), "jobId": bson.M{"$exists": false}}
	_, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"status": string(domain.PendingAwaitingPayment)}})
	return err
}

func (r *PendingPostRepository) Cancel(ctx context.Context, sessionID string, at time.Time) error {
	filter := bson.M{"sessionId": sessionID, "status": string(domain.PendingAwaitingPayment)}
	update := bson.M{"$set": bson.M{"status": string(domain.PendingCancelled), "updatedAt": at}}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}
