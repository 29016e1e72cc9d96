package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/pllus/main-blog/internal/apperr"
	"github.com/pllus/main-blog/internal/models"
)

type MongoUserRepository struct {
	Col *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{Col: db.Collection(UsersCollection)}
}

func (r *MongoUserRepository) List(ctx context.Context) ([]models.User, error) {
	return r.find(ctx, bson.D{})
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	var u models.User
	if err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("user %s not found", id.Hex())
		}
		return nil, translateErr("find user", err)
	}
	return &u, nil
}

func (r *MongoUserRepository) FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *MongoUserRepository) ListByUsername(ctx context.Context, username string) ([]models.User, error) {
	return r.find(ctx, bson.M{"username": username})
}

func (r *MongoUserRepository) Create(ctx context.Context, u models.User) (*models.User, error) {
	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if _, err := r.Col.InsertOne(ctx, u); err != nil {
		return nil, translateErr("insert user", err)
	}
	return &u, nil
}

func (r *MongoUserRepository) find(ctx context.Context, filter any) ([]models.User, error) {
	cur, err := r.Col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, translateErr("find users", err)
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, translateErr("decode users", err)
	}
	return users, nil
}

// translateErr maps driver connectivity failures to apperr.ErrStoreUnavailable
// and wraps everything else with op.
func translateErr(op string, err error) error {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, mongo.ErrClientDisconnected) {
		return apperr.StoreUnavailable(err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
