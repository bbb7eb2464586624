package repository

import (
	"context"
	"errors"

	"github.com/powerise/corporate-site/internal/content"
)

var ErrNotFound = errors.New("record not found")

// StatusAll disables status filtering in ListOptions.
const StatusAll = "all"

// ListOptions narrows a collection listing. Status is one of
// "published", "draft", "all" (empty means "all"). OrderBy names the
// timestamp field to sort by, newest first. Limit of 0 means no limit.
type ListOptions struct {
	Status  string
	OrderBy string
	Limit   int64
}

func (o ListOptions) filtersStatus() bool {
	return o.Status != "" && o.Status != StatusAll
}

// PostRepository persists announcement posts.
type PostRepository interface {
	List(ctx context.Context, opts ListOptions) ([]*content.Post, error)
	Get(ctx context.Context, id string) (*content.Post, error)
	Create(ctx context.Context, p *content.Post) (string, error)
	Update(ctx context.Context, id string, set map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

// WorkRepository persists portfolio works.
type WorkRepository interface {
	List(ctx context.Context, opts ListOptions) ([]*content.Work, error)
	Get(ctx context.Context, id string) (*content.Work, error)
	Create(ctx context.Context, w *content.Work) (string, error)
	Update(ctx context.Context, id string, set map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

// ContactRepository persists contact form submissions.
type ContactRepository interface {
	List(ctx context.Context, opts ListOptions) ([]*content.Contact, error)
	Get(ctx context.Context, id string) (*content.Contact, error)
	Create(ctx context.Context, c *content.Contact) (string, error)
	Update(ctx context.Context, id string, set map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}
