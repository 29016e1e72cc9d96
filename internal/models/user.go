package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type User struct {
	ID       bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name     string        `bson:"name" json:"name"`
	Username string        `bson:"username" json:"username"`
	// Password holds a bcrypt hash; rows imported from the old app may still be plaintext.
	Password  string    `bson:"password" json:"-"`
	CreatedAt time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}
