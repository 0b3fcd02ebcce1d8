package content

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlogPost is an admin-authored article. Date is the display date chosen by
// the author, distinct from the record timestamps.
type BlogPost struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Slug      string             `bson:"slug" json:"slug"`
	Excerpt   string             `bson:"excerpt" json:"excerpt"`
	Content   string             `bson:"content" json:"content"`
	Date      string             `bson:"date" json:"date"`
	Tags      []string           `bson:"tags" json:"tags"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// ContactMessage is a message left through the public contact form.
type ContactMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Message   string             `bson:"message" json:"message"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// PinnedRepo is a repository the admin chose to feature on the projects
// section, in display order.
type PinnedRepo struct {
	RepoID      int64  `bson:"repo_id" json:"repo_id"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description" json:"description"`
	URL         string `bson:"url" json:"url"`
	Stars       int    `bson:"stars" json:"stars"`
	Language    string `bson:"language" json:"language"`
	Order       int    `bson:"order" json:"order"`
}
