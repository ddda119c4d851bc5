package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mindspace-app/mindspace-backend/internal/database"
	"github.com/mindspace-app/mindspace-backend/internal/models"
)

const (
	// TokenDuration is 7 days
	TokenDuration = 7 * 24 * time.Hour
	// RevokedTokenKeyPrefix is the Redis key prefix for revoked token IDs
	RevokedTokenKeyPrefix = "revoked_jti:"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrRevokedToken = errors.New("token has been revoked")
)

// TokenClaims carries the identity embedded in a token. Claims are set at
// issuance and never re-read from the user collection, so a later profile
// rename is not reflected until the user signs in again.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

var jwtSecret []byte

// InitTokens sets the signing secret for issued tokens.
func InitTokens(secret string) {
	jwtSecret = []byte(secret)
}

// IssueToken signs a 7-day token carrying the user's id, name and email.
func IssueToken(user models.User) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenDuration)),
		},
		UserID: user.ID.Hex(),
		Name:   user.Name,
		Email:  user.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// VerifyToken validates the signature and expiry of a token and checks the
// revocation denylist. Returns the embedded claims on success.
func VerifyToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	// Denylist check is skipped when Redis is not connected (unit tests);
	// the gate itself never re-reads the user collection.
	if database.RedisClient != nil && claims.ID != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		exists, err := database.RedisClient.Exists(ctx, RevokedTokenKeyPrefix+claims.ID).Result()
		if err == nil && exists > 0 {
			return nil, ErrRevokedToken
		}
	}

	return claims, nil
}

// RevokeToken denylists a token's jti for the remainder of its validity.
// Called on account deletion so a deleted user's token stops working
// immediately instead of lingering for up to 7 days.
func RevokeToken(ctx context.Context, claims *TokenClaims) error {
	if database.RedisClient == nil || claims.ID == "" {
		return nil
	}
	ttl := TokenDuration
	if claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > 0 {
			ttl = remaining
		}
	}
	return database.RedisClient.Set(ctx, RevokedTokenKeyPrefix+claims.ID, "1", ttl).Err()
}
