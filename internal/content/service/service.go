package service

import (
	"context"
	"fmt"
	"time"

	"github.com/powerise/corporate-site/internal/content"
	"github.com/powerise/corporate-site/internal/content/repository"
	"github.com/powerise/corporate-site/internal/revalidate"
	"github.com/powerise/corporate-site/pkg/logger"
)

// Service implements the admin and public write operations over the
// three content collections. Validation happens before any call into
// this package; every successful post/work write is followed by cache
// invalidation for the public pages rendered from that collection.
type Service struct {
	posts    repository.PostRepository
	works    repository.WorkRepository
	contacts repository.ContactRepository
	cache    revalidate.Cache
}

func New(posts repository.PostRepository, works repository.WorkRepository, contacts repository.ContactRepository, cache revalidate.Cache) *Service {
	return &Service{posts: posts, works: works, contacts: contacts, cache: cache}
}

// PostInput carries the editable fields of a post.
type PostInput struct {
	Title         string
	Content       string
	Excerpt       string
	Status        string
	Tags          []string
	FeaturedImage string
	PublishedAt   *time.Time
}

// WorkInput carries the editable fields of a work.
type WorkInput struct {
	Title         string
	Description   string
	Content       string
	Category      string
	Status        string
	Tags          []string
	Images        []string
	FeaturedImage string
	ClientName    string
	ProjectURL    string
	Technologies  []string
	PublishedAt   *time.Time
}

// ContactInput carries a public contact form submission.
type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Subject string
	Message string
}

func orNow(t *time.Time, now time.Time) time.Time {
	if t != nil {
		return *t
	}
	return now
}

func emptySlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// CreatePost stores a new announcement. Drafts are stamped with a
// publish date too (kept for ordering); it only becomes meaningful once
// the post is published.
func (s *Service) CreatePost(ctx context.Context, in PostInput) (string, error) {
	now := time.Now().UTC()
	publishedAt := now
	if in.Status == content.StatusPublished {
		publishedAt = orNow(in.PublishedAt, now)
	}
	p := &content.Post{
		Title:         in.Title,
		Content:       in.Content,
		Excerpt:       in.Excerpt,
		Status:        in.Status,
		Tags:          emptySlice(in.Tags),
		Author:        "admin",
		FeaturedImage: in.FeaturedImage,
		PublishedAt:   &publishedAt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	id, err := s.posts.Create(ctx, p)
	if err != nil {
		return "", fmt.Errorf("create post: %w", err)
	}
	s.invalidate(ctx, "/", "/news")
	return id, nil
}

// UpdatePost applies a partial update. When the status is published and
// no explicit publish date was supplied, PublishedAt becomes the update
// time; drafts keep whatever date they had.
func (s *Service) UpdatePost(ctx context.Context, id string, in PostInput) error {
	now := time.Now().UTC()
	set := map[string]interface{}{
		"title":         in.Title,
		"content":       in.Content,
		"excerpt":       in.Excerpt,
		"status":        in.Status,
		"tags":          emptySlice(in.Tags),
		"featuredImage": in.FeaturedImage,
		"updatedAt":     now,
	}
	if in.Status == content.StatusPublished {
		set["publishedAt"] = orNow(in.PublishedAt, now)
	}
	if err := s.posts.Update(ctx, id, set); err != nil {
		return fmt.Errorf("update post %s: %w", id, err)
	}
	s.invalidate(ctx, "/", "/news", "/news/"+id)
	return nil
}

func (s *Service) DeletePost(ctx context.Context, id string) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	s.invalidate(ctx, "/", "/news", "/news/"+id)
	return nil
}

func (s *Service) GetPost(ctx context.Context, id string) (*content.Post, error) {
	return s.posts.Get(ctx, id)
}

func (s *Service) ListPosts(ctx context.Context, opts repository.ListOptions) ([]*content.Post, error) {
	return s.posts.List(ctx, opts)
}

// CreateWork stores a new portfolio entry. The slug is always derived
// from the title; collisions are not checked.
func (s *Service) CreateWork(ctx context.Context, in WorkInput) (string, error) {
	now := time.Now().UTC()
	publishedAt := now
	if in.Status == content.StatusPublished {
		publishedAt = orNow(in.PublishedAt, now)
	}
	w := &content.Work{
		Title:         in.Title,
		Description:   in.Description,
		Content:       in.Content,
		Slug:          content.Slugify(in.Title),
		Category:      in.Category,
		Status:        in.Status,
		Tags:          emptySlice(in.Tags),
		Images:        emptySlice(in.Images),
		FeaturedImage: in.FeaturedImage,
		ClientName:    in.ClientName,
		ProjectURL:    in.ProjectURL,
		Technologies:  emptySlice(in.Technologies),
		PublishedAt:   &publishedAt,
		UpdatedAt:     now,
	}
	id, err := s.works.Create(ctx, w)
	if err != nil {
		return "", fmt.Errorf("create work: %w", err)
	}
	s.invalidate(ctx, "/", "/works")
	return id, nil
}

// UpdateWork applies a partial update, recomputing the slug from the
// (possibly changed) title.
func (s *Service) UpdateWork(ctx context.Context, id string, in WorkInput) error {
	now := time.Now().UTC()
	set := map[string]interface{}{
		"title":         in.Title,
		"description":   in.Description,
		"content":       in.Content,
		"slug":          content.Slugify(in.Title),
		"category":      in.Category,
		"status":        in.Status,
		"tags":          emptySlice(in.Tags),
		"images":        emptySlice(in.Images),
		"featuredImage": in.FeaturedImage,
		"clientName":    in.ClientName,
		"projectUrl":    in.ProjectURL,
		"technologies":  emptySlice(in.Technologies),
		"updatedAt":     now,
	}
	if in.Status == content.StatusPublished {
		set["publishedAt"] = orNow(in.PublishedAt, now)
	}
	if err := s.works.Update(ctx, id, set); err != nil {
		return fmt.Errorf("update work %s: %w", id, err)
	}
	s.invalidate(ctx, "/", "/works", "/works/"+id)
	return nil
}

func (s *Service) DeleteWork(ctx context.Context, id string) error {
	if err := s.works.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete work %s: %w", id, err)
	}
	s.invalidate(ctx, "/", "/works", "/works/"+id)
	return nil
}

func (s *Service) GetWork(ctx context.Context, id string) (*content.Work, error) {
	return s.works.Get(ctx, id)
}

func (s *Service) ListWorks(ctx context.Context, opts repository.ListOptions) ([]*content.Work, error) {
	return s.works.List(ctx, opts)
}

// SubmitContact stores a public form submission with status "new".
func (s *Service) SubmitContact(ctx context.Context, in ContactInput) (string, error) {
	c := &content.Contact{
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		Company:     in.Company,
		Subject:     in.Subject,
		Message:     in.Message,
		Status:      content.ContactStatusNew,
		SubmittedAt: time.Now().UTC(),
	}
	id, err := s.contacts.Create(ctx, c)
	if err != nil {
		return "", fmt.Errorf("submit contact: %w", err)
	}
	return id, nil
}

// UpdateContactStatus moves a contact through its lifecycle
// (new -> read -> replied). Unknown statuses are rejected.
func (s *Service) UpdateContactStatus(ctx context.Context, id, status string) error {
	switch status {
	case content.ContactStatusNew, content.ContactStatusRead, content.ContactStatusReplied:
	default:
		return fmt.Errorf("invalid contact status %q", status)
	}
	set := map[string]interface{}{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	}
	if err := s.contacts.Update(ctx, id, set); err != nil {
		return fmt.Errorf("update contact %s: %w", id, err)
	}
	return nil
}

func (s *Service) DeleteContact(ctx context.Context, id string) error {
	if err := s.contacts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete contact %s: %w", id, err)
	}
	return nil
}

func (s *Service) GetContact(ctx context.Context, id string) (*content.Contact, error) {
	return s.contacts.Get(ctx, id)
}

func (s *Service) ListContacts(ctx context.Context, opts repository.ListOptions) ([]*content.Contact, error) {
	return s.contacts.List(ctx, opts)
}

// invalidate drops cached renders of the given public paths. Called
// only after a successful write.
func (s *Service) invalidate(ctx context.Context, paths ...string) {
	if s.cache == nil {
		return
	}
	logger.Debugf("revalidating %v", paths)
	s.cache.Invalidate(ctx, paths...)
}
