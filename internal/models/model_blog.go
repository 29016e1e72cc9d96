package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Comment struct {
	ID      bson.ObjectID `bson:"_id" json:"_id"`
	Content string        `bson:"content" json:"content"`
	User    bson.ObjectID `bson:"user" json:"user"`
	Likes   int           `bson:"likes" json:"likes"`
}

type BlogPost struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title     string        `bson:"title" json:"title"`
	Content   string        `bson:"content" json:"content"`
	Author    bson.ObjectID `bson:"author" json:"author"`
	Likes     int           `bson:"likes" json:"likes"`
	Comments  []Comment     `bson:"comments" json:"comments"`
	CreatedAt time.Time     `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// Clone returns a copy whose comment slice does not alias p's.
func (p BlogPost) Clone() BlogPost {
	out := p
	out.Comments = make([]Comment, len(p.Comments))
	copy(out.Comments, p.Comments)
	return out
}
