package mongo

import (
	"context"
	"errors"
	"time"

	"fitzone/gym-backend/internal/domain"
	"fitzone/gym-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const trainerCollectionName = "trainers"

// mongoTrainerRepository implements repository.TrainerRepository.
type mongoTrainerRepository struct {
	collection *mongo.Collection
}

// NewMongoTrainerRepository creates a new trainer repository backed by MongoDB.
func NewMongoTrainerRepository(db *mongo.Database) repository.TrainerRepository {
	return &mongoTrainerRepository{
		collection: db.Collection(trainerCollectionName),
	}
}

// Create inserts a new trainer profile.
func (r *mongoTrainerRepository) Create(ctx context.Context, t *domain.Trainer) (primitive.ObjectID, error) {
	if t.FullName == "" || t.Email == "" {
		return primitive.NilObjectID, errors.New("trainer full name and email are required")
	}

	t.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, t)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a trainer by ObjectID.
func (r *mongoTrainerRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error) {
	var t domain.Trainer
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// GetByIDs retrieves the trainers whose IDs are in the given list.
func (r *mongoTrainerRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Trainer, error) {
	if len(ids) == 0 {
		return []domain.Trainer{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var trainers []domain.Trainer
	if err = cursor.All(ctx, &trainers); err != nil {
		return nil, err
	}
	return trainers, nil
}

// List retrieves all trainer profiles.
func (r *mongoTrainerRepository) List(ctx context.Context) ([]domain.Trainer, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var trainers []domain.Trainer
	if err = cursor.All(ctx, &trainers); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return trainers, nil
}

// Update replaces the mutable profile fields of a trainer. Reviews and the
// derived rating are not touched here; AddReview owns those.
func (r *mongoTrainerRepository) Update(ctx context.Context, t *domain.Trainer) error {
	if t.ID == primitive.NilObjectID {
		return errors.New("trainer ID is required for update")
	}

	update := bson.M{
		"$set": bson.M{
			"fullName":        t.FullName,
			"email":           t.Email,
			"phoneNumber":     t.PhoneNumber,
			"specialization":  t.Specialization,
			"experienceYears": t.ExperienceYears,
			"certifications":  t.Certifications,
			"isAvailable":     t.IsAvailable,
			"updatedAt":       time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": t.ID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a trainer profile.
func (r *mongoTrainerRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddReview appends the review and recomputes the derived rating in a single
// aggregation-pipeline update, so concurrent reviews never produce a stale
// mean. The second $set stage sees the array written by the first.
func (r *mongoTrainerRepository) AddReview(ctx context.Context, id primitive.ObjectID, review domain.Review) error {
	reviewDoc := bson.M{
		"reviewerId": review.ReviewerID,
		"rating":     review.Rating,
		"comment":    review.Comment,
		"date":       review.Date,
	}

	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"reviews": bson.M{
				"$concatArrays": bson.A{
					bson.M{"$ifNull": bson.A{"$reviews", bson.A{}}},
					bson.A{reviewDoc},
				},
			},
		}}},
		{{Key: "$set", Value: bson.M{
			"rating":    bson.M{"$avg": "$reviews.rating"},
			"updatedAt": time.Now().UTC(),
		}}},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetSchedule wholesale-replaces the trainer's weekly schedule.
func (r *mongoTrainerRepository) SetSchedule(ctx context.Context, id primitive.ObjectID, schedule []domain.ScheduleDay) error {
	update := bson.M{
		"$set": bson.M{
			"schedule":  schedule,
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetProfileImageKey records the object-storage key of the trainer's profile image.
func (r *mongoTrainerRepository) SetProfileImageKey(ctx context.Context, id primitive.ObjectID, key string) error {
	update := bson.M{
		"$set": bson.M{
			"profileImageKey": key,
			"updatedAt":       time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureTrainerIndexes creates necessary indexes for the trainers collection.
func EnsureTrainerIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "isAvailable", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
