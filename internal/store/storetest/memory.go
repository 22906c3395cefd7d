// Package storetest provides an in-memory user and article store for tests.
package storetest

import (
	"context"
	"fmt"
	"sync"

	"github.com/ayush/inkpress/internal/common"
	"github.com/ayush/inkpress/internal/models"
)

// Memory mirrors MongoStore semantics: insertion order, first match wins
// on title lookups, no uniqueness constraints.
type Memory struct {
	mu       sync.Mutex
	users    []models.User
	articles []models.Article

	// Err, when set, is returned by every operation.
	Err error
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.users = append(m.users, *u)
	return nil
}

func (m *Memory) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", username, common.ErrNotFound)
}

// Users returns a copy of the stored users.
func (m *Memory) Users() []models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.User(nil), m.users...)
}

func (m *Memory) InsertArticle(_ context.Context, a *models.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.articles = append(m.articles, *a)
	return nil
}

func (m *Memory) ListArticles(_ context.Context) ([]models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]models.Article{}, m.articles...), nil
}

func (m *Memory) FindArticleByTitle(_ context.Context, title string) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, a := range m.articles {
		if a.Title == title {
			a := a
			return &a, nil
		}
	}
	return nil, fmt.Errorf("article %q: %w", title, common.ErrNotFound)
}

func (m *Memory) UpdateArticleByTitle(_ context.Context, title string, upd models.ArticleUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for i := range m.articles {
		if m.articles[i].Title == title {
			at := upd.UpdatedAt
			m.articles[i].Title = upd.Title
			m.articles[i].Description = upd.Description
			m.articles[i].Category = upd.Category
			m.articles[i].UpdatedAt = &at
			return nil
		}
	}
	return fmt.Errorf("article %q: %w", title, common.ErrNotFound)
}
