package bootstrap

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/pllus/main-blog/internal/repository"
)

// EnsureBlogIndexes creates the lookup indexes used by login and the
// comment-by-id like. Username is indexed but not unique.
func EnsureBlogIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(repository.UsersCollection).Indexes().CreateOne(ctx,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetName("idx_username"),
		},
	)
	if err != nil {
		return err
	}

	_, err = db.Collection(repository.BlogPostsCollection).Indexes().CreateOne(ctx,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "comments._id", Value: 1}},
			Options: options.Index().SetName("idx_comment_id"),
		},
	)
	return err
}
