package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayush/inkpress/internal/common"
	"github.com/ayush/inkpress/internal/models"
)

// MongoStore handles user and article documents in MongoDB.
type MongoStore struct {
	users    *mongo.Collection
	articles *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		users:    db.Collection("users"),
		articles: db.Collection("articles"),
	}
}

// EnsureIndexes creates the lookup indexes. Neither is unique: duplicate
// usernames and titles are accepted by the application.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	if _, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "username", Value: 1}},
	}); err != nil {
		return common.StorageError("mongo users index", err)
	}
	if _, err := s.articles.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "title", Value: 1}},
	}); err != nil {
		return common.StorageError("mongo articles index", err)
	}
	return nil
}

func (s *MongoStore) CreateUser(ctx context.Context, u *models.User) error {
	if _, err := s.users.InsertOne(ctx, u); err != nil {
		return common.StorageError("mongo insert user", err)
	}
	return nil
}

func (s *MongoStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user %q: %w", username, common.ErrNotFound)
	}
	if err != nil {
		return nil, common.StorageError("mongo find user", err)
	}
	return &u, nil
}

func (s *MongoStore) InsertArticle(ctx context.Context, a *models.Article) error {
	if _, err := s.articles.InsertOne(ctx, a); err != nil {
		return common.StorageError("mongo insert article", err)
	}
	return nil
}

// ListArticles returns every article without its object id, oldest first.
func (s *MongoStore) ListArticles(ctx context.Context) ([]models.Article, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 0}).
		SetSort(bson.D{{Key: "published_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.articles.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, common.StorageError("mongo list articles", err)
	}
	defer cur.Close(ctx)

	docs := []models.Article{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, common.StorageError("mongo decode articles", err)
	}
	return docs, nil
}

func (s *MongoStore) FindArticleByTitle(ctx context.Context, title string) (*models.Article, error) {
	var a models.Article
	err := s.articles.FindOne(ctx, bson.M{"title": title}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("article %q: %w", title, common.ErrNotFound)
	}
	if err != nil {
		return nil, common.StorageError("mongo find article", err)
	}
	return &a, nil
}

// UpdateArticleByTitle overwrites the first article whose title matches.
func (s *MongoStore) UpdateArticleByTitle(ctx context.Context, title string, upd models.ArticleUpdate) error {
	res, err := s.articles.UpdateOne(ctx, bson.M{"title": title}, bson.M{"$set": bson.M{
		"title":       upd.Title,
		"description": upd.Description,
		"category":    upd.Category,
		"updated_at":  upd.UpdatedAt,
	}})
	if err != nil {
		return common.StorageError("mongo update article", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("article %q: %w", title, common.ErrNotFound)
	}
	return nil
}
