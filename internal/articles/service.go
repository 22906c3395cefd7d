package articles

import (
	"context"
	"fmt"
	"time"

	"github.com/ayush/inkpress/internal/common"
	"github.com/ayush/inkpress/internal/models"
	"github.com/ayush/inkpress/internal/upload"
)

// Store defines the interface for article persistence.
type Store interface {
	InsertArticle(ctx context.Context, a *models.Article) error
	ListArticles(ctx context.Context) ([]models.Article, error)
	FindArticleByTitle(ctx context.Context, title string) (*models.Article, error)
	UpdateArticleByTitle(ctx context.Context, title string, upd models.ArticleUpdate) error
}

type Service struct {
	store  Store
	thumbs *upload.Thumbnails
	now    func() time.Time
}

func NewService(store Store, thumbs *upload.Thumbnails) *Service {
	return &Service{store: store, thumbs: thumbs, now: time.Now}
}

// Publish stores a new article. A thumbnail with a disallowed extension is
// dropped and the article is stored without one.
func (s *Service) Publish(ctx context.Context, req models.PublishRequest, thumb *upload.File) (*models.Article, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrValidation)
	}

	a := &models.Article{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		PublishedAt: s.now(),
	}
	p, err := s.thumbs.Save(ctx, thumb)
	if err != nil {
		return nil, err
	}
	if p != "" {
		a.Thumbnail = &p
	}

	if err := s.store.InsertArticle(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) List(ctx context.Context) ([]models.Article, error) {
	return s.store.ListArticles(ctx)
}

func (s *Service) Get(ctx context.Context, title string) (*models.Article, error) {
	return s.store.FindArticleByTitle(ctx, title)
}

// Update overwrites the first article titled title. Concurrent updates of
// the same title are not serialized; the last write wins.
func (s *Service) Update(ctx context.Context, title string, req models.PublishRequest) error {
	if req.Title == "" {
		return fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	return s.store.UpdateArticleByTitle(ctx, title, models.ArticleUpdate{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		UpdatedAt:   s.now(),
	})
}
