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

type MongoBlogRepository struct {
	Col *mongo.Collection
}

func NewMongoBlogRepository(db *mongo.Database) *MongoBlogRepository {
	return &MongoBlogRepository{Col: db.Collection(BlogPostsCollection)}
}

// List returns every post in insertion order (ObjectIDs grow monotonically).
func (r *MongoBlogRepository) List(ctx context.Context) ([]models.BlogPost, error) {
	cur, err := r.Col.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, translateErr("find blog posts", err)
	}
	defer cur.Close(ctx)

	posts := []models.BlogPost{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, translateErr("decode blog posts", err)
	}
	for i := range posts {
		normalize(&posts[i])
	}
	return posts, nil
}

func (r *MongoBlogRepository) Create(ctx context.Context, p models.BlogPost) (*models.BlogPost, error) {
	if p.ID.IsZero() {
		p.ID = bson.NewObjectID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	normalize(&p)
	if _, err := r.Col.InsertOne(ctx, p); err != nil {
		return nil, translateErr("insert blog post", err)
	}
	return &p, nil
}

func (r *MongoBlogRepository) IncLikes(ctx context.Context, id bson.ObjectID) (*models.BlogPost, error) {
	return r.update(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"likes": 1}},
		func() error { return apperr.NotFound("blog post %s not found", id.Hex()) })
}

func (r *MongoBlogRepository) AppendComment(ctx context.Context, id bson.ObjectID, c models.Comment) (*models.BlogPost, error) {
	return r.update(ctx, bson.M{"_id": id}, bson.M{"$push": bson.M{"comments": c}},
		func() error { return apperr.NotFound("blog post %s not found", id.Hex()) })
}

// IncCommentLikesAt addresses the comment by position. The existence guard on
// comments.<index> makes an out-of-range index miss instead of creating a field.
func (r *MongoBlogRepository) IncCommentLikesAt(ctx context.Context, id bson.ObjectID, index int) (*models.BlogPost, error) {
	if index < 0 {
		return nil, apperr.NotFound("comment index %d out of range", index)
	}
	path := fmt.Sprintf("comments.%d", index)
	filter := bson.M{"_id": id, path: bson.M{"$exists": true}}
	update := bson.M{"$inc": bson.M{path + ".likes": 1}}
	return r.update(ctx, filter, update, func() error {
		return r.missing(ctx, id, apperr.NotFound("comment index %d out of range", index))
	})
}

func (r *MongoBlogRepository) IncCommentLikes(ctx context.Context, id, commentID bson.ObjectID) (*models.BlogPost, error) {
	filter := bson.M{"_id": id, "comments._id": commentID}
	update := bson.M{"$inc": bson.M{"comments.$.likes": 1}}
	return r.update(ctx, filter, update, func() error {
		return r.missing(ctx, id, apperr.NotFound("comment %s not found", commentID.Hex()))
	})
}

func (r *MongoBlogRepository) update(ctx context.Context, filter, update any, notFound func() error) (*models.BlogPost, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.BlogPost
	if err := r.Col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound()
		}
		return nil, translateErr("update blog post", err)
	}
	normalize(&post)
	return &post, nil
}

// missing tells apart "no such post" from "post exists but the comment does not".
func (r *MongoBlogRepository) missing(ctx context.Context, id bson.ObjectID, commentErr error) error {
	n, err := r.Col.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return translateErr("count blog posts", err)
	}
	if n == 0 {
		return apperr.NotFound("blog post %s not found", id.Hex())
	}
	return commentErr
}

func normalize(p *models.BlogPost) {
	if p.Comments == nil {
		p.Comments = []models.Comment{}
	}
}
