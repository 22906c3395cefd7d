package articles

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ayush/inkpress/internal/common"
	"github.com/ayush/inkpress/internal/models"
	"github.com/ayush/inkpress/internal/store"
	"github.com/ayush/inkpress/internal/store/storetest"
	"github.com/ayush/inkpress/internal/upload"
)

func newTestService(t *testing.T) (*Service, *storetest.Memory) {
	t.Helper()
	mem := storetest.NewMemory()
	svc := NewService(mem, upload.NewThumbnails(store.NewDiskStore(t.TempDir())))
	return svc, mem
}

func TestPublishWithoutThumbnail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	before := time.Now()
	a, err := svc.Publish(ctx, models.PublishRequest{Title: "Hello", Description: "D", Category: "C"}, nil)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if a.Thumbnail != nil || a.UpdatedAt != nil {
		t.Errorf("unexpected optional fields: %+v", a)
	}
	if a.PublishedAt.Before(before) {
		t.Errorf("published_at %v not set to now", a.PublishedAt)
	}

	list, _ := svc.List(ctx)
	if len(list) != 1 || list[0].Title != "Hello" {
		t.Fatalf("List = %+v", list)
	}
}

func TestPublishThumbnail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.Publish(ctx, models.PublishRequest{Title: "Pic"}, &upload.File{Name: "Cat.PNG", Size: 3, Body: strings.NewReader("png")})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if a.Thumbnail == nil || *a.Thumbnail != "uploads/cat.png" {
		t.Errorf("thumbnail = %v", a.Thumbnail)
	}

	a, err = svc.Publish(ctx, models.PublishRequest{Title: "Bad"}, &upload.File{Name: "payload.exe", Body: strings.NewReader("x")})
	if err != nil {
		t.Fatalf("Publish with rejected file should not fail: %v", err)
	}
	if a.Thumbnail != nil {
		t.Errorf("rejected thumbnail recorded: %v", *a.Thumbnail)
	}
}

func TestPublishDuplicatesAllowed(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := svc.Publish(ctx, models.PublishRequest{Title: "Same"}, nil); err != nil {
			t.Fatalf("Publish: %v", err)
		}
	}
	if list, _ := svc.List(ctx); len(list) != 2 {
		t.Fatalf("got %d articles, want 2", len(list))
	}
}

func TestPublishRequiresTitle(t *testing.T) {
	svc, mem := newTestService(t)
	_, err := svc.Publish(context.Background(), models.PublishRequest{Description: "D"}, nil)
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if list, _ := mem.ListArticles(context.Background()); len(list) != 0 {
		t.Error("invalid article stored")
	}
}

func TestUpdateRenamesArticle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	svc.Publish(ctx, models.PublishRequest{Title: "Hello", Description: "D", Category: "C"}, nil)

	if err := svc.Update(ctx, "Hello", models.PublishRequest{Title: "Hi", Description: "D2", Category: "C2"}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	a, err := svc.Get(ctx, "Hi")
	if err != nil {
		t.Fatalf("Get new title: %v", err)
	}
	if a.Description != "D2" || a.Category != "C2" || a.UpdatedAt == nil {
		t.Errorf("article after update = %+v", a)
	}
	if _, err := svc.Get(ctx, "Hello"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("old title err = %v, want ErrNotFound", err)
	}
}

func TestUpdateErrors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Update(ctx, "missing", models.PublishRequest{Title: "x"}); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("missing article err = %v, want ErrNotFound", err)
	}
	if err := svc.Update(ctx, "missing", models.PublishRequest{}); !errors.Is(err, common.ErrValidation) {
		t.Errorf("empty title err = %v, want ErrValidation", err)
	}
}
