package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a stored account. Password holds the Argon2id hash and is empty
// for Google-authenticated accounts (IsGoogleAuth true).
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Name         string `bson:"name" json:"name"`
	Email        string `bson:"email" json:"email"`
	Password     string `bson:"password" json:"-"` // Don't return password in JSON
	IsGoogleAuth bool   `bson:"is_google_auth" json:"is_google_auth"`
	ProfilePic   string `bson:"profile_pic,omitempty" json:"profile_pic,omitempty"` // URL or base64 string
}
