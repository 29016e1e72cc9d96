package utils

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/pllus/main-blog/internal/apperr"
)

// Oid parses a hex ObjectID, reporting what as the offending field.
func Oid(hex, what string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		return bson.NilObjectID, apperr.Validation("invalid %s: %q", what, hex)
	}
	return oid, nil
}
