package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mindspace-app/mindspace-backend/internal/models"
)

const testSecret = "test-secret-key-at-least-32-chars!!"

func newTestUser() models.User {
	return models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Ada",
		Email: "ada@example.com",
	}
}

func TestIssueAndVerifyToken(t *testing.T) {
	InitTokens(testSecret)
	user := newTestUser()

	token, err := IssueToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, "Ada", claims.Name)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID, "token should carry a jti")

	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(TokenDuration), claims.ExpiresAt.Time, time.Minute)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	InitTokens(testSecret)

	_, err := VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = VerifyToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenRejectsTampering(t *testing.T) {
	InitTokens(testSecret)
	token, err := IssueToken(newTestUser())
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = VerifyToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	InitTokens("some-other-secret-entirely-here!!!!")
	token, err := IssueToken(newTestUser())
	require.NoError(t, err)

	InitTokens(testSecret)
	_, err = VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	InitTokens(testSecret)
	user := newTestUser()

	expired := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-8 * 24 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
		},
		UserID: user.ID.Hex(),
		Name:   user.Name,
		Email:  user.Email,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expired).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = VerifyToken(signed)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

// Claims are a snapshot from issuance: the gate never re-reads the user
// collection, so a token issued before a rename keeps the old name until the
// user signs in again.
func TestClaimsAreStaleAfterRename(t *testing.T) {
	InitTokens(testSecret)
	user := newTestUser()

	token, err := IssueToken(user)
	require.NoError(t, err)

	user.Name = "Ada Lovelace" // stored profile changes, token does not

	claims, err := VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "Ada", claims.Name)
}

func TestTokensCarryUniqueIDs(t *testing.T) {
	InitTokens(testSecret)
	user := newTestUser()

	first, err := IssueToken(user)
	require.NoError(t, err)
	second, err := IssueToken(user)
	require.NoError(t, err)

	c1, err := VerifyToken(first)
	require.NoError(t, err)
	c2, err := VerifyToken(second)
	require.NoError(t, err)
	assert.NotEqual(t, c1.ID, c2.ID)
}
