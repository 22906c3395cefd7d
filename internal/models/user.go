package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a document in the users collection.
type User struct {
	ID       primitive.ObjectID `json:"-"        bson:"_id,omitempty"`
	Username string             `json:"username" bson:"username"`
	Email    string             `json:"email"    bson:"email"`
	Password string             `json:"-"        bson:"password"` // bcrypt hash, never serialize
	Avatar   *string            `json:"avatar"   bson:"avatar"`
}

// SignupRequest is the form body for POST /signup.
type SignupRequest struct {
	Username string
	Email    string
	Password string
	Avatar   string
}
