package dto

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type CreateBlogReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`
}

type CreateCommentReq struct {
	Content string `json:"content"`
	UserID  string `json:"userId"`
}

// CommentView is a comment with the commenter's display name resolved.
type CommentView struct {
	ID       bson.ObjectID `json:"_id"`
	Content  string        `json:"content"`
	User     bson.ObjectID `json:"user"`
	UserName string        `json:"userName"`
	Likes    int           `json:"likes"`
}

// BlogPostView is a blog post with author and commenter names resolved.
type BlogPostView struct {
	ID         bson.ObjectID `json:"_id"`
	Title      string        `json:"title"`
	Content    string        `json:"content"`
	Author     bson.ObjectID `json:"author"`
	AuthorName string        `json:"authorName"`
	Likes      int           `json:"likes"`
	Comments   []CommentView `json:"comments"`
	CreatedAt  time.Time     `json:"createdAt,omitempty"`
}
