package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// TokenIssuer signs HS256 access tokens carrying the user id in uid and sub.
type TokenIssuer struct {
	Secret []byte
	TTL    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if secret == "" {
		return nil
	}
	return &TokenIssuer{Secret: []byte(secret), TTL: ttl, now: time.Now}
}

func (t *TokenIssuer) Issue(uid bson.ObjectID) (string, error) {
	now := t.now()
	claims := jwt.MapClaims{
		"uid": uid.Hex(),
		"sub": uid.Hex(),
		"iat": now.Unix(),
		"exp": now.Add(t.TTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.Secret)
}
