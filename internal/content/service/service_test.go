package service

import (
	"context"
	"testing"
	"time"

	"github.com/powerise/corporate-site/internal/content"
	"github.com/powerise/corporate-site/internal/content/repository"
	"github.com/powerise/corporate-site/internal/revalidate"
)

func newTestService() (*Service, *revalidate.MemoryCache) {
	cache := revalidate.NewMemoryCache(time.Hour)
	svc := New(
		repository.NewMemoryPostRepo(),
		repository.NewMemoryWorkRepo(),
		repository.NewMemoryContactRepo(),
		cache,
	)
	return svc, cache
}

func TestCreatePost_DraftThenPublish(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	id, err := svc.CreatePost(ctx, PostInput{
		Title:   "Year-end notice",
		Content: "<p>closed</p>",
		Status:  content.StatusDraft,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	before := time.Now().UTC()
	if err := svc.UpdatePost(ctx, id, PostInput{
		Title:   "Year-end notice",
		Content: "<p>closed</p>",
		Status:  content.StatusPublished,
	}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	got, err := svc.GetPost(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != content.StatusPublished {
		t.Fatalf("status = %q", got.Status)
	}
	// publishing without an explicit date stamps the update time
	if got.PublishedAt == nil || got.PublishedAt.Before(before) {
		t.Fatalf("publishedAt = %v, want >= %v", got.PublishedAt, before)
	}
}

func TestUpdatePost_ExplicitPublishDate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	id, err := svc.CreatePost(ctx, PostInput{Title: "t", Content: "c", Status: content.StatusDraft})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	want := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	if err := svc.UpdatePost(ctx, id, PostInput{
		Title: "t", Content: "c", Status: content.StatusPublished, PublishedAt: &want,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := svc.GetPost(ctx, id)
	if got.PublishedAt == nil || !got.PublishedAt.Equal(want) {
		t.Fatalf("publishedAt = %v, want %v", got.PublishedAt, want)
	}
}

func TestWorkSlugRecomputedOnTitleChange(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	id, err := svc.CreateWork(ctx, WorkInput{
		Title:       "Hello, World! 2024",
		Description: "d",
		Content:     "c",
		Category:    "web",
		Status:      content.StatusPublished,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, _ := svc.GetWork(ctx, id)
	if got.Slug != "hello-world-2024" {
		t.Fatalf("slug = %q, want hello-world-2024", got.Slug)
	}

	if err := svc.UpdateWork(ctx, id, WorkInput{
		Title:       "Corporate Site Renewal",
		Description: "d",
		Content:     "c",
		Category:    "web",
		Status:      content.StatusPublished,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = svc.GetWork(ctx, id)
	if got.Slug != "corporate-site-renewal" {
		t.Fatalf("slug after rename = %q", got.Slug)
	}
}

func TestWriteInvalidatesPublicPages(t *testing.T) {
	svc, cache := newTestService()
	ctx := context.Background()

	cache.Set(ctx, "/news", "<html>stale</html>")
	cache.Set(ctx, "/works", "<html>stale</html>")

	if _, err := svc.CreatePost(ctx, PostInput{Title: "t", Content: "c", Status: content.StatusPublished}); err != nil {
		t.Fatalf("create post: %v", err)
	}
	if _, ok := cache.Get(ctx, "/news"); ok {
		t.Fatal("post create should invalidate /news")
	}

	if _, err := svc.CreateWork(ctx, WorkInput{Title: "w", Description: "d", Content: "c", Category: "web", Status: content.StatusPublished}); err != nil {
		t.Fatalf("create work: %v", err)
	}
	if _, ok := cache.Get(ctx, "/works"); ok {
		t.Fatal("work create should invalidate /works")
	}
}

func TestSubmitContactAndLifecycle(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	start := time.Now().UTC()
	id, err := svc.SubmitContact(ctx, ContactInput{
		Name:    "Hanako",
		Email:   "hanako@example.com",
		Subject: "Quote request",
		Message: "Please contact me",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	got, err := svc.GetContact(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != content.ContactStatusNew {
		t.Fatalf("status = %q, want new", got.Status)
	}
	if got.SubmittedAt.Before(start) {
		t.Fatalf("submittedAt %v before request start %v", got.SubmittedAt, start)
	}

	if err := svc.UpdateContactStatus(ctx, id, "bogus"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if err := svc.UpdateContactStatus(ctx, id, content.ContactStatusReplied); err != nil {
		t.Fatalf("update status: %v", err)
	}

	if err := svc.DeleteContact(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, err := svc.ListContacts(ctx, repository.ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, c := range list {
		if c.ID == id {
			t.Fatal("deleted contact still listed")
		}
	}
}
