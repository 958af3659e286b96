package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
)

// FriendRequest is a directed intent to become friends. Once a request
// exists between two users (either direction, any status) no further
// request may be created for that pair.
type FriendRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SenderID    primitive.ObjectID `bson:"sender_id" json:"sender"`
	RecipientID primitive.ObjectID `bson:"recipient_id" json:"recipient"`
	PairKey     string             `bson:"pair_key" json:"-"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}

// PairKeyFor builds the canonical unordered-pair key for two users, so
// (a,b) and (b,a) collide on the unique index.
func PairKeyFor(a, b primitive.ObjectID) string {
	first, second := a.Hex(), b.Hex()
	if strings.Compare(first, second) > 0 {
		first, second = second, first
	}
	return first + ":" + second
}

// IncomingFriendRequest is a request addressed to the current user,
// enriched with the sender's public profile.
type IncomingFriendRequest struct {
	ID        primitive.ObjectID `json:"id"`
	Sender    UserSummary        `json:"sender"`
	Status    string             `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
}

// OutgoingFriendRequest is a pending request the current user sent,
// enriched with the recipient's public profile.
type OutgoingFriendRequest struct {
	ID        primitive.ObjectID `json:"id"`
	Recipient UserSummary        `json:"recipient"`
	Status    string             `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
}
