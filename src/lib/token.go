package lib

import (
	"context"
	"fmt"
	"time"
	"triphub/src/types"

	"github.com/golang-jwt/jwt/v4"
)

// JWTVerifier accepts HS256 tokens signed with a shared secret. It stands in
// for Firebase in local and test environments.
type JWTVerifier struct {
	Secret []byte
}

func (v JWTVerifier) Verify(_ context.Context, raw string) (*types.VerifiedToken, error) {
	claims := &types.Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.Secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token error: %s: %w", err.Error(), types.ErrUnauthorized)
	}
	if !tkn.Valid || claims.Email == "" {
		return nil, types.ErrUnauthorized
	}
	return &types.VerifiedToken{UID: claims.Subject, Email: claims.Email}, nil
}

func IssueLocalToken(secret []byte, uid string, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := types.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
