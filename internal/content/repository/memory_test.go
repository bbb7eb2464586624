package repository

import (
	"context"
	"testing"
	"time"

	"github.com/powerise/corporate-site/internal/content"
)

func TestMemoryPostRepo_CRUD(t *testing.T) {
	repo := NewMemoryPostRepo()
	ctx := context.Background()

	now := time.Now().UTC()
	id, err := repo.Create(ctx, &content.Post{
		Title:     "Launch",
		Content:   "<p>hello</p>",
		Status:    content.StatusDraft,
		Author:    "admin",
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated id")
	}

	got, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Title != "Launch" {
		t.Fatalf("unexpected post: %+v", got)
	}

	pub := time.Now().UTC()
	if err := repo.Update(ctx, id, map[string]interface{}{
		"status":      content.StatusPublished,
		"publishedAt": pub,
		"updatedAt":   pub,
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	got, _ = repo.Get(ctx, id)
	if got.Status != content.StatusPublished || got.PublishedAt == nil {
		t.Fatalf("publish not applied: %+v", got)
	}

	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.Get(ctx, id); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryPostRepo_ListFiltersAndOrders(t *testing.T) {
	repo := NewMemoryPostRepo()
	ctx := context.Background()

	base := time.Now().UTC()
	for i, st := range []string{content.StatusPublished, content.StatusDraft, content.StatusPublished} {
		ts := base.Add(time.Duration(i) * time.Minute)
		pub := ts
		p := &content.Post{Title: "p", Status: st, CreatedAt: ts, UpdatedAt: ts}
		if st == content.StatusPublished {
			p.PublishedAt = &pub
		}
		if _, err := repo.Create(ctx, p); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	published, err := repo.List(ctx, ListOptions{Status: content.StatusPublished, OrderBy: "publishedAt"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(published) != 2 {
		t.Fatalf("expected 2 published posts, got %d", len(published))
	}
	if published[0].PublishedAt.Before(*published[1].PublishedAt) {
		t.Fatal("expected newest-first ordering")
	}

	all, err := repo.List(ctx, ListOptions{Status: StatusAll})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(all))
	}

	limited, err := repo.List(ctx, ListOptions{Status: StatusAll, Limit: 1})
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected 1 post, got %d", len(limited))
	}
}

func TestMemoryContactRepo_StatusTransitions(t *testing.T) {
	repo := NewMemoryContactRepo()
	ctx := context.Background()

	id, err := repo.Create(ctx, &content.Contact{
		Name:        "Taro",
		Email:       "taro@example.com",
		Subject:     "Hello",
		Message:     "About the services page",
		Status:      content.ContactStatusNew,
		SubmittedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.Update(ctx, id, map[string]interface{}{"status": content.ContactStatusRead}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != content.ContactStatusRead {
		t.Fatalf("status = %q", got.Status)
	}

	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, err := repo.List(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("deleted contact still listed: %d", len(list))
	}
}
