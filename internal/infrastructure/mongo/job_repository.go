package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Stuart1162/fizzyjuice/internal/public/application"
	"github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

// JobRepository implements application.JobRepository using MongoDB.
type JobRepository struct {
	collection *mongo.Collection
}

// NewJobRepository creates a new Mongo-backed job repository.
func NewJobRepository(db *mongo.Database, collectionName string) *JobRepository {
	return &JobRepository{collection: db.Collection(collectionName)}
}

// translate は driver のエラーをドメインのエラーへ変換する。
func translate(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrNotFound
	}
	return err
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		// 不正な ID は存在しない求人と同じ扱い。
		return primitive.NilObjectID, domain.ErrNotFound
	}
	return objectID, nil
}

// List returns jobs newest first. Visibility and text filters are applied by the caller.
func (r *JobRepository) List(ctx context.Context, query application.JobQuery) ([]domain.Job, error) {
	filter := bson.M{}
	if query.Draft != nil {
		filter["draft"] = *query.Draft
	}
	if query.CreatedBy != "" {
		filter["createdBy"] = query.CreatedBy
	}
	return r.find(ctx, filter)
}

func (r *JobRepository) find(ctx context.Context, filter bson.M) ([]domain.Job, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	jobs := make([]domain.Job, 0)
	for cursor.Next(ctx) {
		var doc JobDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		jobs = append(jobs, mapJob(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var doc JobDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	job := mapJob(doc)
	return &job, nil
}

func (r *JobRepository) FindByRef(ctx context.Context, ref string) (*domain.Job, error) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "#")
	if ref == "" {
		return nil, domain.ErrNotFound
	}
	// ref は衝突し得るので、最も古いものを正とする。
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	var doc JobDocument
	if err := r.collection.FindOne(ctx, bson.M{"ref": ref}, opts).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	job := mapJob(doc)
	return &job, nil
}

// RefExists is the uniqueness check behind ref-code generation.
func (r *JobRepository) RefExists(ctx context.Context, ref string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"ref": ref}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count ref: %w", err)
	}
	return count > 0, nil
}

// Create inserts the job and writes the generated id back.
func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	doc := toJobDocument(*job)
	doc.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}
	job.ID = doc.ID.Hex()
	return nil
}

// Update replaces every stored field with the job's values.
func (r *JobRepository) Update(ctx context.Context, job *domain.Job) error {
	objectID, err := parseObjectID(job.ID)
	if err != nil {
		return err
	}
	doc := toJobDocument(*job)
	doc.ID = objectID
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": objectID}, doc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	objectID, err := parseObjectID(id)
	if err != nil {
		return err
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdminJobRepository は管理画面向けに同じコレクションを公開する。
type AdminJobRepository struct {
	*JobRepository
}

func NewAdminJobRepository(db *mongo.Database, collectionName string) *AdminJobRepository {
	return &AdminJobRepository{JobRepository: NewJobRepository(db, collectionName)}
}

// FindAll lists every job, optionally narrowed by draft state.
func (r *AdminJobRepository) FindAll(ctx context.Context, draft *bool) ([]domain.Job, error) {
	filter := bson.M{}
	if draft != nil {
		filter["draft"] = *draft
	}
	return r.find(ctx, filter)
}
