package content

import "time"

// Status values shared by posts and works.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Contact status lifecycle: created as "new" by the public form, then
// moved by an admin to "read" or "replied".
const (
	ContactStatusNew     = "new"
	ContactStatusRead    = "read"
	ContactStatusReplied = "replied"
)

// Post is an announcement shown on the public news pages.
// PublishedAt is only meaningful while Status is "published".
type Post struct {
	ID            string     `bson:"_id,omitempty" json:"id"`
	Title         string     `bson:"title" json:"title"`
	Content       string     `bson:"content" json:"content"`
	Excerpt       string     `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	Status        string     `bson:"status" json:"status"`
	Tags          []string   `bson:"tags" json:"tags"`
	Author        string     `bson:"author" json:"author"`
	FeaturedImage string     `bson:"featuredImage,omitempty" json:"featuredImage,omitempty"`
	PublishedAt   *time.Time `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// Work is a portfolio entry. Slug is recomputed from Title on every
// create and update; uniqueness is not enforced.
type Work struct {
	ID            string     `bson:"_id,omitempty" json:"id"`
	Title         string     `bson:"title" json:"title"`
	Description   string     `bson:"description" json:"description"`
	Content       string     `bson:"content" json:"content"`
	Slug          string     `bson:"slug" json:"slug"`
	Category      string     `bson:"category" json:"category"`
	Status        string     `bson:"status" json:"status"`
	Tags          []string   `bson:"tags" json:"tags"`
	Images        []string   `bson:"images" json:"images"`
	FeaturedImage string     `bson:"featuredImage,omitempty" json:"featuredImage,omitempty"`
	ClientName    string     `bson:"clientName,omitempty" json:"clientName,omitempty"`
	ProjectURL    string     `bson:"projectUrl,omitempty" json:"projectUrl,omitempty"`
	Technologies  []string   `bson:"technologies" json:"technologies"`
	PublishedAt   *time.Time `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// Contact is an inbound form submission. It is never edited by the
// submitter; admins only change Status or delete the record.
type Contact struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Email       string    `bson:"email" json:"email"`
	Phone       string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Company     string    `bson:"company,omitempty" json:"company,omitempty"`
	Subject     string    `bson:"subject" json:"subject"`
	Message     string    `bson:"message" json:"message"`
	Status      string    `bson:"status" json:"status"`
	SubmittedAt time.Time `bson:"submittedAt" json:"submittedAt"`
	UpdatedAt   time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
