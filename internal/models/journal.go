package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultEntryTitle is used when a journal entry is created without a title.
const DefaultEntryTitle = "My Thoughts"

// JournalEntry is a single journal submission. Entries are immutable once
// stored: there is no update path, and UserID never changes after creation.
// Mood is the inferred emotional tone, always in [1,5].
type JournalEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	Mood      int                `bson:"mood" json:"mood"` // 1 = very low, 5 = very good
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
