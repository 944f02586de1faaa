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

const sessionCollectionName = "class_sessions"

// mongoSessionRepository implements repository.SessionRepository.
type mongoSessionRepository struct {
	collection *mongo.Collection
}

// NewMongoSessionRepository creates a new class-session repository backed by MongoDB.
func NewMongoSessionRepository(db *mongo.Database) repository.SessionRepository {
	return &mongoSessionRepository{
		collection: db.Collection(sessionCollectionName),
	}
}

// Create inserts a new class session.
func (r *mongoSessionRepository) Create(ctx context.Context, s *domain.ClassSession) (primitive.ObjectID, error) {
	if s.Name == "" || s.TrainerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("session name and trainer ID are required")
	}

	s.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	if s.EnrolledMembers == nil {
		s.EnrolledMembers = []primitive.ObjectID{}
	}

	result, err := r.collection.InsertOne(ctx, s)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a class session by ObjectID.
func (r *mongoSessionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ClassSession, error) {
	var s domain.ClassSession
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// List retrieves all class sessions.
func (r *mongoSessionRepository) List(ctx context.Context) ([]domain.ClassSession, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []domain.ClassSession
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Update replaces the mutable fields of a session. The enrollment list is
// not touched here; AddMember/RemoveMember own it.
func (r *mongoSessionRepository) Update(ctx context.Context, s *domain.ClassSession) error {
	if s.ID == primitive.NilObjectID {
		return errors.New("session ID is required for update")
	}

	update := bson.M{
		"$set": bson.M{
			"name":        s.Name,
			"type":        s.Type,
			"description": s.Description,
			"trainerId":   s.TrainerID,
			"capacity":    s.Capacity,
			"schedule":    s.Schedule,
			"level":       s.Level,
			"price":       s.Price,
			"location":    s.Location,
			"equipment":   s.Equipment,
			"status":      s.Status,
			"updatedAt":   time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": s.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a class session.
func (r *mongoSessionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddMember appends memberID in a single conditional write: the filter only
// matches when the member is absent and the enrollment list is still below
// capacity, so two members racing for the last slot cannot both get in.
func (r *mongoSessionRepository) AddMember(ctx context.Context, sessionID, memberID primitive.ObjectID) error {
	filter := bson.M{
		"_id":             sessionID,
		"enrolledMembers": bson.M{"$ne": memberID},
		"$expr": bson.M{
			"$lt": bson.A{bson.M{"$size": "$enrolledMembers"}, "$capacity"},
		},
	}
	update := bson.M{
		"$push": bson.M{"enrolledMembers": memberID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNoMatch
	}
	return nil
}

// RemoveMember pulls memberID from the enrollment list; the filter requires
// the member to be present so "not enrolled" is distinguishable.
func (r *mongoSessionRepository) RemoveMember(ctx context.Context, sessionID, memberID primitive.ObjectID) error {
	filter := bson.M{
		"_id":             sessionID,
		"enrolledMembers": memberID,
	}
	update := bson.M{
		"$pull": bson.M{"enrolledMembers": memberID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNoMatch
	}
	return nil
}

// EnsureSessionIndexes creates necessary indexes for the class_sessions collection.
func EnsureSessionIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
