package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/pllus/main-blog/internal/models"
)

const (
	UsersCollection     = "users"
	BlogPostsCollection = "blogposts"
)

// UserRepository is the persistent store for users. Lookups that find
// nothing return an apperr.ErrNotFound.
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	// FindByIDs returns the users that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.User, error)
	// ListByUsername returns every user with the given username; usernames are not unique.
	ListByUsername(ctx context.Context, username string) ([]models.User, error)
	Create(ctx context.Context, u models.User) (*models.User, error)
}

// BlogRepository is the persistent store for blog posts and their embedded
// comments. Every mutation is a single atomic update and returns the post
// as it is after the update.
type BlogRepository interface {
	List(ctx context.Context) ([]models.BlogPost, error)
	Create(ctx context.Context, p models.BlogPost) (*models.BlogPost, error)
	IncLikes(ctx context.Context, id bson.ObjectID) (*models.BlogPost, error)
	AppendComment(ctx context.Context, id bson.ObjectID, c models.Comment) (*models.BlogPost, error)
	IncCommentLikesAt(ctx context.Context, id bson.ObjectID, index int) (*models.BlogPost, error)
	IncCommentLikes(ctx context.Context, id, commentID bson.ObjectID) (*models.BlogPost, error)
}
