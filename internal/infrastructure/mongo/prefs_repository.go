package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

// PrefsRepository stores profiles and jobseeker preferences in one collection keyed by {uid, kind}.
type PrefsRepository struct {
	collection *mongo.Collection
}

func NewPrefsRepository(db *mongo.Database, collectionName string) *PrefsRepository {
	return &PrefsRepository{collection: db.Collection(collectionName)}
}

func (r *PrefsRepository) findKind(ctx context.Context, userID, kind string) (*PrefsDocument, error) {
	var doc PrefsDocument
	err := r.collection.FindOne(ctx, bson.M{"uid": userID, "kind": kind}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// FindProfile returns nil without error when the user has not written a profile yet.
func (r *PrefsRepository) FindProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	doc, err := r.findKind(ctx, userID, prefsKindProfile)
	if err != nil || doc == nil {
		return nil, err
	}
	profile := mapProfile(*doc)
	return &profile, nil
}

// UpsertProfile は createdAt を初回のみ書き込む。作成されたかどうかを返す。
func (r *PrefsRepository) UpsertProfile(ctx context.Context, profile *domain.Profile) (bool, error) {
	set := bson.M{
		"displayName":      profile.DisplayName,
		"email":            profile.Email,
		"role":             string(profile.Role),
		"companyName":      profile.CompanyName,
		"companyLocation":  profile.CompanyLocation,
		"companyPostcode":  profile.CompanyPostcode,
		"applicationEmail": profile.ApplicationEmail,
		"instagramUrl":     profile.InstagramURL,
	}
	if profile.UpdatedAt != nil {
		set["updatedAt"] = *profile.UpdatedAt
	}
	update := bson.M{"$set": set}
	if profile.CreatedAt != nil {
		update["$setOnInsert"] = bson.M{"createdAt": *profile.CreatedAt}
	}
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"uid": profile.UserID, "kind": prefsKindProfile},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, err
	}
	return result.UpsertedCount > 0, nil
}

// FindPreferences returns nil without error when the jobseeker has not saved preferences.
func (r *PrefsRepository) FindPreferences(ctx context.Context, userID string) (*domain.Preferences, error) {
	doc, err := r.findKind(ctx, userID, prefsKindJobseeker)
	if err != nil || doc == nil {
		return nil, err
	}
	prefs := mapPreferences(*doc)
	return &prefs, nil
}

func (r *PrefsRepository) SavePreferences(ctx context.Context, userID string, prefs domain.Preferences) error {
	update := bson.M{"$set": bson.M{
		"companyStrengths":  prefs.Strengths,
		"prefRoles":         prefs.Roles,
		"prefContractTypes": prefs.ContractTypes,
		"prefLocation":      prefs.Location,
	}}
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"uid": userID, "kind": prefsKindJobseeker},
		update,
		options.Update().SetUpsert(true),
	)
	return err
}

// ListProfiles returns every stored profile.
func (r *PrefsRepository) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	docs, err := r.listKind(ctx, prefsKindProfile)
	if err != nil {
		return nil, err
	}
	profiles := make([]domain.Profile, 0, len(docs))
	for _, doc := range docs {
		profiles = append(profiles, mapProfile(doc))
	}
	return profiles, nil
}

// ListSeekerPreferences returns every stored jobseeker preference document.
func (r *PrefsRepository) ListSeekerPreferences(ctx context.Context) ([]domain.Preferences, error) {
	docs, err := r.listKind(ctx, prefsKindJobseeker)
	if err != nil {
		return nil, err
	}
	prefs := make([]domain.Preferences, 0, len(docs))
	for _, doc := range docs {
		prefs = append(prefs, mapPreferences(doc))
	}
	return prefs, nil
}

func (r *PrefsRepository) listKind(ctx context.Context, kind string) ([]PrefsDocument, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"kind": kind})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	docs := make([]PrefsDocument, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// DeleteUser removes every prefs document of the user.
func (r *PrefsRepository) DeleteUser(ctx context.Context, userID string) (bool, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"uid": userID})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}
