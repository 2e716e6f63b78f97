package repository

import (
	"context"
	"errors"
	"fmt"

	"engagesurvey/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ResponseRepo handles MongoDB operations for completed surveys
type ResponseRepo interface {
	Record(ctx context.Context, response *model.SurveyResponse) error
	GetByID(ctx context.Context, id string) (*model.SurveyResponse, error)
	List(ctx context.Context) ([]*model.SurveyResponse, error)
	Count(ctx context.Context) (int64, error)
	CountByEmail(ctx context.Context, email string) (int64, error)
	AnsweredContentKeys(ctx context.Context) (model.KeySet, error)
	PageResponseCounts(ctx context.Context) (map[string]int, error)
	EnsureIndexes(ctx context.Context) error
}

type responseRepo struct {
	collection *mongo.Collection
}

// NewResponseRepo creates a new response repository
func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{
		collection: db.Collection("survey_responses"),
	}
}

// Record upserts the response under its ID, so a retried submission overwrites
// the earlier attempt. The timestamp is assigned by the server.
func (r *responseRepo) Record(ctx context.Context, response *model.SurveyResponse) error {
	if response.ID == "" {
		return errors.New("response id is required")
	}

	update := bson.M{
		"$set": bson.M{
			"name":         response.Name,
			"email":        response.Email,
			"demographics": response.Demographics,
			"answers":      response.Answers,
			"folders":      response.Folders,
			"duration":     response.Duration,
		},
		"$currentDate": bson.M{"timestamp": true},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": response.ID}, update, opts)
	return err
}

func (r *responseRepo) GetByID(ctx context.Context, id string) (*model.SurveyResponse, error) {
	var response model.SurveyResponse
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&response)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// List returns every response, newest first
func (r *responseRepo) List(ctx context.Context) ([]*model.SurveyResponse, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []*model.SurveyResponse
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *responseRepo) CountByEmail(ctx context.Context, email string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"email": email})
}

// AnsweredContentKeys returns the folder key of every rating in every response.
// This reads the whole collection's ratings; response volume is study-sized.
func (r *responseRepo) AnsweredContentKeys(ctx context.Context) (model.KeySet, error) {
	values, err := r.collection.Distinct(ctx, "answers.folder", bson.D{})
	if err != nil {
		return nil, err
	}

	keys := make(model.KeySet, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected folder key type %T", v)
		}
		keys.Add(model.ContentKey(s))
	}
	return keys, nil
}

// PageResponseCounts returns, per page folder, how many responses rated at least one of its faces
func (r *responseRepo) PageResponseCounts(ctx context.Context) (map[string]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$project", Value: bson.M{"pages": bson.M{"$setUnion": bson.A{"$answers.page", bson.A{}}}}}},
		{{Key: "$unwind", Value: "$pages"}},
		{{Key: "$group", Value: bson.M{"_id": "$pages", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Page  string `bson:"_id"`
		Count int    `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Page] = row.Count
	}
	return counts, nil
}

func (r *responseRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "answers.folder", Value: 1}}},
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
	})
	return err
}
