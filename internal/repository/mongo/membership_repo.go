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

const membershipCollectionName = "memberships"

// mongoMembershipRepository implements repository.MembershipRepository.
type mongoMembershipRepository struct {
	collection *mongo.Collection
}

// NewMongoMembershipRepository creates a new membership repository backed by MongoDB.
func NewMongoMembershipRepository(db *mongo.Database) repository.MembershipRepository {
	return &mongoMembershipRepository{
		collection: db.Collection(membershipCollectionName),
	}
}

// Create inserts a new membership application. The unique index on email is
// the last line of defense against duplicate applications racing past the
// service-level pre-check.
func (r *mongoMembershipRepository) Create(ctx context.Context, m *domain.Membership) (primitive.ObjectID, error) {
	if m.FullName == "" || m.Email == "" || m.PhoneNumber == "" || m.Plan == "" {
		return primitive.NilObjectID, errors.New("membership full name, email, phone number, and plan are required")
	}

	m.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	if m.StartDate.IsZero() {
		m.StartDate = now
	}

	result, err := r.collection.InsertOne(ctx, m)
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

// GetByID retrieves a membership application by its ObjectID.
func (r *mongoMembershipRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Membership, error) {
	var m domain.Membership
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// GetByEmail retrieves a membership application by email.
func (r *mongoMembershipRepository) GetByEmail(ctx context.Context, email string) (*domain.Membership, error) {
	var m domain.Membership
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// List retrieves applications, optionally filtered by status.
func (r *mongoMembershipRepository) List(ctx context.Context, status domain.MembershipStatus, newestFirst bool) ([]domain.Membership, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	findOptions := options.Find()
	if newestFirst {
		findOptions.SetSort(bson.D{{Key: "createdAt", Value: -1}})
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var memberships []domain.Membership
	if err = cursor.All(ctx, &memberships); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return memberships, nil
}

// GetByIDs retrieves the applications whose IDs are in the given list.
func (r *mongoMembershipRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Membership, error) {
	if len(ids) == 0 {
		return []domain.Membership{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var memberships []domain.Membership
	if err = cursor.All(ctx, &memberships); err != nil {
		return nil, err
	}
	return memberships, nil
}

// UpdateStatus sets the status of an application. Status validation belongs
// to the service layer; this is a single atomic document update.
func (r *mongoMembershipRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.MembershipStatus) error {
	update := bson.M{
		"$set": bson.M{
			"status":    status,
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

// Delete removes a membership application.
func (r *mongoMembershipRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Count returns the total number of applications.
func (r *mongoMembershipRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// CountByStatus returns the number of applications with the given status.
func (r *mongoMembershipRepository) CountByStatus(ctx context.Context, status domain.MembershipStatus) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": status})
}

// CountByPlan returns the number of applications on the given plan.
func (r *mongoMembershipRepository) CountByPlan(ctx context.Context, plan domain.MembershipPlan) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"plan": plan})
}

// EnsureMembershipIndexes creates necessary indexes for the memberships collection.
func EnsureMembershipIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
