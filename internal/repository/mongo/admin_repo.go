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

const adminCollectionName = "admins"

// mongoAdminRepository implements repository.AdminRepository using MongoDB.
type mongoAdminRepository struct {
	collection *mongo.Collection
}

// NewMongoAdminRepository creates a new admin repository backed by MongoDB.
func NewMongoAdminRepository(db *mongo.Database) repository.AdminRepository {
	return &mongoAdminRepository{
		collection: db.Collection(adminCollectionName),
	}
}

// Create inserts a new admin account.
func (r *mongoAdminRepository) Create(ctx context.Context, admin *domain.Admin) (primitive.ObjectID, error) {
	if admin.Username == "" || admin.Email == "" || admin.PasswordHash == "" {
		return primitive.NilObjectID, errors.New("admin username, email, and password hash are required")
	}
	if admin.Role == "" {
		admin.Role = domain.RoleAdmin
	}

	admin.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	admin.CreatedAt = now
	admin.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, admin)
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

// GetByUsername retrieves an admin account by username.
func (r *mongoAdminRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	var admin domain.Admin
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// GetByID retrieves an admin account by its ObjectID.
func (r *mongoAdminRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Admin, error) {
	var admin domain.Admin
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// EnsureAdminIndexes creates necessary indexes for the admins collection.
// Call this once during application startup.
func EnsureAdminIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
