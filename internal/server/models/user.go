// Package models holds the persisted entities of the server.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a document in the "users" collection. Registration writes it,
// login only reads it. Extra holds arbitrary profile fields stored on the
// document that the server does not interpret.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
	Extra        map[string]any     `bson:",inline"`
}

// Document returns the record as a generic map mirroring its stored shape,
// password hash included. Never hand this to clients.
func (u *User) Document() map[string]any {
	doc := make(map[string]any, len(u.Extra)+6)
	for k, v := range u.Extra {
		doc[k] = v
	}
	doc["_id"] = u.ID.Hex()
	doc["username"] = u.Username
	doc["email"] = u.Email
	doc["password"] = u.PasswordHash
	doc["createdAt"] = u.CreatedAt
	doc["updatedAt"] = u.UpdatedAt
	return doc
}

// PublicProfile builds a fresh client-safe view of the record. The password
// hash, id and timestamps are never copied in, so there is nothing to strip
// afterwards.
func (u *User) PublicProfile() map[string]any {
	profile := make(map[string]any, len(u.Extra)+2)
	for k, v := range u.Extra {
		profile[k] = v
	}
	profile["username"] = u.Username
	profile["email"] = u.Email
	return profile
}
