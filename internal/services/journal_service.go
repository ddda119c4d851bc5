package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mindspace-app/mindspace-backend/internal/database"
	"github.com/mindspace-app/mindspace-backend/internal/models"
)

var (
	ErrEntryNotFound = errors.New("entry not found")
	ErrNotEntryOwner = errors.New("not the entry owner")
)

func entriesCollection() *mongo.Collection {
	return database.DB.Collection("journal_entries")
}

// CreateEntry persists a new journal entry for the given owner. The title
// defaults when omitted; mood must already be clamped by the caller's
// classification step. The creation timestamp is assigned here.
func CreateEntry(ctx context.Context, userID primitive.ObjectID, title, content string, mood int) (models.JournalEntry, error) {
	if title == "" {
		title = models.DefaultEntryTitle
	}

	entry := models.JournalEntry{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		Mood:      mood,
		CreatedAt: time.Now(),
	}

	if _, err := entriesCollection().InsertOne(ctx, entry); err != nil {
		return models.JournalEntry{}, err
	}
	return entry, nil
}

// ListEntries returns every entry owned by userID, newest first. A user
// with no entries gets an empty slice, never nil.
func ListEntries(ctx context.Context, userID primitive.ObjectID) ([]models.JournalEntry, error) {
	findOptions := options.Find().SetSort(bson.M{"created_at": -1})

	cursor, err := entriesCollection().Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := make([]models.JournalEntry, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteEntry removes a single entry after checking it exists and belongs
// to userID. Deleting an id that does not resolve is an error, not a no-op.
func DeleteEntry(ctx context.Context, entryIDHex string, userID primitive.ObjectID) error {
	entryID, err := primitive.ObjectIDFromHex(entryIDHex)
	if err != nil {
		return ErrEntryNotFound
	}

	var entry models.JournalEntry
	err = entriesCollection().FindOne(ctx, bson.M{"_id": entryID}).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return ErrEntryNotFound
	}
	if err != nil {
		return err
	}

	if entry.UserID != userID {
		return ErrNotEntryOwner
	}

	_, err = entriesCollection().DeleteOne(ctx, bson.M{"_id": entryID})
	return err
}

// DeleteEntriesByUser removes every entry owned by userID and returns how
// many were deleted. Zero entries is success, not an error.
func DeleteEntriesByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := entriesCollection().DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
