package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account in the Lingua Connect system.
type User struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	FullName         string               `bson:"full_name" json:"fullName"`
	Email            string               `bson:"email" json:"email"`
	HashedPassword   string               `bson:"hashed_password" json:"-"`
	Bio              string               `bson:"bio" json:"bio"`
	ProfilePicture   string               `bson:"profile_picture" json:"profilePicture"`
	NativeLanguage   string               `bson:"native_language" json:"nativeLanguage"`
	LearningLanguage string               `bson:"learning_language" json:"learningLanguage"`
	Location         string               `bson:"location" json:"location"`
	IsOnboarded      bool                 `bson:"is_onboarded" json:"isOnboarded"`
	Friends          []primitive.ObjectID `bson:"friends" json:"friends"`
	CreatedAt        time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time            `bson:"updated_at" json:"updatedAt"`
}

// UserSummary is the public slice of a profile embedded in friend lists
// and enriched friend-request responses.
type UserSummary struct {
	ID               primitive.ObjectID `json:"id"`
	FullName         string             `json:"fullName"`
	ProfilePicture   string             `json:"profilePicture"`
	NativeLanguage   string             `json:"nativeLanguage"`
	LearningLanguage string             `json:"learningLanguage"`
}

// Summary projects a user down to its public profile fields.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:               u.ID,
		FullName:         u.FullName,
		ProfilePicture:   u.ProfilePicture,
		NativeLanguage:   u.NativeLanguage,
		LearningLanguage: u.LearningLanguage,
	}
}

// Sanitized returns a copy safe to attach to a request context: the
// credential and the friend list are stripped.
func (u *User) Sanitized() *User {
	clean := *u
	clean.HashedPassword = ""
	clean.Friends = nil
	return &clean
}
