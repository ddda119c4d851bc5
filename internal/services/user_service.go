package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mindspace-app/mindspace-backend/internal/database"
	"github.com/mindspace-app/mindspace-backend/internal/models"
)

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")
)

func usersCollection() *mongo.Collection {
	return database.DB.Collection("users")
}

// googleDisplayName picks the account name for a Google sign-in: the
// provider's display name, else the capitalized email prefix, else "User".
func googleDisplayName(email, displayName string) string {
	name := strings.TrimSpace(displayName)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	if name == "" {
		return "User"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// CreateUser stores a new password-based account. Email uniqueness is
// enforced both by a pre-check and by the unique index, so concurrent
// registrations with the same email cannot both succeed.
func CreateUser(ctx context.Context, name, email, passwordHash string) (models.User, error) {
	var existing models.User
	err := usersCollection().FindOne(ctx, bson.M{"email": email}).Decode(&existing)
	if err == nil {
		return models.User{}, ErrEmailTaken
	}
	if err != mongo.ErrNoDocuments {
		return models.User{}, err
	}

	now := time.Now()
	user := models.User{
		ID:        primitive.NewObjectID(),
		CreatedAt: now,
		UpdatedAt: now,
		Name:      name,
		Email:     email,
		Password:  passwordHash,
	}

	if _, err := usersCollection().InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}
	return user, nil
}

// UpsertGoogleUser finds an account by email or provisions one flagged as
// Google-authenticated (no password hash). The display name falls back to
// the capitalized email prefix when the provider sends nothing usable.
func UpsertGoogleUser(ctx context.Context, email, displayName string) (models.User, error) {
	var existing models.User
	err := usersCollection().FindOne(ctx, bson.M{"email": email}).Decode(&existing)
	if err == nil {
		return existing, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.User{}, err
	}

	name := googleDisplayName(email, displayName)

	now := time.Now()
	user := models.User{
		ID:           primitive.NewObjectID(),
		CreatedAt:    now,
		UpdatedAt:    now,
		Name:         name,
		Email:        email,
		Password:     "",
		IsGoogleAuth: true,
	}
	if _, err := usersCollection().InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Lost a race with another sign-in for the same email
			if ferr := usersCollection().FindOne(ctx, bson.M{"email": email}).Decode(&existing); ferr == nil {
				return existing, nil
			}
		}
		return models.User{}, err
	}
	return user, nil
}

// FindUserByEmail looks up an account by exact email.
func FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := usersCollection().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// FindUserByID looks up an account by its hex object id.
func FindUserByID(ctx context.Context, idHex string) (models.User, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return models.User{}, ErrUserNotFound
	}
	var user models.User
	err = usersCollection().FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// UpdateProfile applies the provided fields; empty fields are left
// unchanged. Returns the updated account.
func UpdateProfile(ctx context.Context, idHex, name, profilePic string) (models.User, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return models.User{}, ErrUserNotFound
	}

	set := bson.M{"updated_at": time.Now()}
	if name != "" {
		set["name"] = name
	}
	if profilePic != "" {
		set["profile_pic"] = profilePic
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err = usersCollection().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// DeleteUserCascade removes the account and then every journal entry it
// owns. The two deletes are not atomic; a crash between them can leave
// orphaned entries. Returns the number of entries removed.
func DeleteUserCascade(ctx context.Context, idHex string) (int64, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return 0, ErrUserNotFound
	}

	res, err := usersCollection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	if res.DeletedCount == 0 {
		return 0, ErrUserNotFound
	}

	return DeleteEntriesByUser(ctx, id)
}
