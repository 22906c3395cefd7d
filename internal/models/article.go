package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Article is a document in the articles collection. The object id is
// internal and never leaves the server.
type Article struct {
	ID          primitive.ObjectID `json:"-"                    bson:"_id,omitempty"`
	Title       string             `json:"title"                bson:"title"`
	Description string             `json:"description"          bson:"description"`
	Category    string             `json:"category"             bson:"category"`
	Thumbnail   *string            `json:"thumbnail"            bson:"thumbnail"`
	PublishedAt time.Time          `json:"published_at"         bson:"published_at"`
	UpdatedAt   *time.Time         `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// PublishRequest is the form body for POST /publish.
type PublishRequest struct {
	Title       string
	Description string
	Category    string
}

// ArticleUpdate holds the fields overwritten by POST /update_article/{title}.
type ArticleUpdate struct {
	Title       string
	Description string
	Category    string
	UpdatedAt   time.Time
}
