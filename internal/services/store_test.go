package services

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mindspace-app/mindspace-backend/internal/database"
)

// Store tests need a real MongoDB; set MONGODB_TEST_URI to run them.

var storeOnce sync.Once

func setupStore(t *testing.T) context.Context {
	t.Helper()
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}
	storeOnce.Do(func() {
		if err := database.Connect(uri); err != nil {
			t.Fatalf("connect mongo: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	ctx := setupStore(t)
	email := "dup-check@example.com"
	database.DB.Collection("users").DeleteMany(ctx, bson.M{"email": email})

	first, err := CreateUser(ctx, "First", email, "$argon2id$fake")
	require.NoError(t, err)
	assert.False(t, first.IsGoogleAuth)
	assert.NotEmpty(t, first.Password)

	_, err = CreateUser(ctx, "Second", email, "$argon2id$other")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUpsertGoogleUser(t *testing.T) {
	ctx := setupStore(t)
	email := "google-person@example.com"
	database.DB.Collection("users").DeleteMany(ctx, bson.M{"email": email})

	created, err := UpsertGoogleUser(ctx, email, "")
	require.NoError(t, err)
	assert.True(t, created.IsGoogleAuth)
	assert.Empty(t, created.Password, "OAuth accounts carry no password hash")
	assert.Equal(t, "Google-person", created.Name)

	// Second sign-in resolves to the same account
	again, err := UpsertGoogleUser(ctx, email, "Different Name")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Equal(t, "Google-person", again.Name)
}

func TestDeleteEntryOwnership(t *testing.T) {
	ctx := setupStore(t)

	owner, err := CreateUser(ctx, "Owner", "owner-store@example.com", "$argon2id$fake")
	if err == ErrEmailTaken {
		owner, err = FindUserByEmail(ctx, "owner-store@example.com")
	}
	require.NoError(t, err)
	intruder, err := CreateUser(ctx, "Intruder", "intruder-store@example.com", "$argon2id$fake")
	if err == ErrEmailTaken {
		intruder, err = FindUserByEmail(ctx, "intruder-store@example.com")
	}
	require.NoError(t, err)

	entry, err := CreateEntry(ctx, owner.ID, "", "a quiet evening", 4)
	require.NoError(t, err)
	assert.Equal(t, "My Thoughts", entry.Title)

	err = DeleteEntry(ctx, entry.ID.Hex(), intruder.ID)
	assert.ErrorIs(t, err, ErrNotEntryOwner)

	err = DeleteEntry(ctx, entry.ID.Hex(), owner.ID)
	require.NoError(t, err)

	err = DeleteEntry(ctx, entry.ID.Hex(), owner.ID)
	assert.ErrorIs(t, err, ErrEntryNotFound)

	err = DeleteEntry(ctx, "not-a-hex-id", owner.ID)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}
