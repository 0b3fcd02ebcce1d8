// Package content persists the site's managed content in MongoDB.
package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	blogsCollection    = "blogs"
	contactsCollection = "contacts"
	pinnedCollection   = "pinned_repos"
)

var (
	ErrNotFound      = errors.New("document not found")
	ErrDuplicateSlug = errors.New("slug already in use")
)

// Connect dials MongoDB and verifies the connection.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client, nil
}

type Store struct {
	db  *mongo.Database
	now func() time.Time
}

func NewStore(db *mongo.Database) *Store {
	return &Store{db: db, now: time.Now}
}

// --- blog posts ---

func (s *Store) ListPosts(ctx context.Context) ([]BlogPost, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.db.Collection(blogsCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	posts := []BlogPost{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *Store) GetPostBySlug(ctx context.Context, slug string) (*BlogPost, error) {
	var post BlogPost
	err := s.db.Collection(blogsCollection).FindOne(ctx, bson.D{{Key: "slug", Value: slug}}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *Store) CreatePost(ctx context.Context, post *BlogPost) error {
	coll := s.db.Collection(blogsCollection)
	count, err := coll.CountDocuments(ctx, bson.D{{Key: "slug", Value: post.Slug}})
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateSlug
	}

	now := s.now()
	post.ID = primitive.NewObjectID()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Tags == nil {
		post.Tags = []string{}
	}
	_, err = coll.InsertOne(ctx, post)
	return err
}

func (s *Store) UpdatePost(ctx context.Context, id string, post *BlogPost) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: post.Title},
		{Key: "slug", Value: post.Slug},
		{Key: "excerpt", Value: post.Excerpt},
		{Key: "content", Value: post.Content},
		{Key: "date", Value: post.Date},
		{Key: "tags", Value: post.Tags},
		{Key: "updated_at", Value: s.now()},
	}}}
	res, err := s.db.Collection(blogsCollection).UpdateByID(ctx, oid, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeletePost(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.db.Collection(blogsCollection).DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// --- contact messages ---

func (s *Store) CreateMessage(ctx context.Context, msg *ContactMessage) error {
	msg.ID = primitive.NewObjectID()
	msg.Read = false
	msg.CreatedAt = s.now()
	_, err := s.db.Collection(contactsCollection).InsertOne(ctx, msg)
	return err
}

func (s *Store) ListMessages(ctx context.Context) ([]ContactMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.db.Collection(contactsCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	msgs := []ContactMessage{}
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (s *Store) MarkMessageRead(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "read", Value: true}}}}
	res, err := s.db.Collection(contactsCollection).UpdateByID(ctx, oid, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteMessage(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.db.Collection(contactsCollection).DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// --- pinned repos ---

func (s *Store) ListPinnedRepos(ctx context.Context) ([]PinnedRepo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cur, err := s.db.Collection(pinnedCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	repos := []PinnedRepo{}
	if err := cur.All(ctx, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// SetPinnedRepos replaces the whole pinned selection. The list is small
// (a handful of featured repos) so a wholesale swap keeps ordering simple.
func (s *Store) SetPinnedRepos(ctx context.Context, repos []PinnedRepo) error {
	coll := s.db.Collection(pinnedCollection)
	if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
		return err
	}
	if len(repos) == 0 {
		return nil
	}
	docs := make([]interface{}, len(repos))
	for i, r := range repos {
		r.Order = i
		docs[i] = r
	}
	_, err := coll.InsertMany(ctx, docs)
	return err
}
