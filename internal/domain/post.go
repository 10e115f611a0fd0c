package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// ErrSlugTaken signals a unique-constraint violation on the slug column.
var ErrSlugTaken = errors.New("slug already in use")

// Categories is the fixed list of blog categories shown in the admin editor.
var Categories = []string{
	"Marka Tescil",
	"Patent Başvurusu",
	"Tasarım Tescili",
	"Fikri Mülkiyet Hukuku",
	"Uluslararası Tescil",
	"Strateji",
	"Genel",
}

// ValidCategory reports whether c is one of the fixed categories.
func ValidCategory(c string) bool {
	for _, cat := range Categories {
		if cat == c {
			return true
		}
	}
	return false
}

type BlogPost struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Excerpt        string     `json:"excerpt"`
	Content        string     `json:"content"`
	Author         string     `json:"author"`
	Category       string     `json:"category"`
	Tags           []string   `json:"tags"`
	FeaturedImage  *string    `json:"featured_image"`
	Published      bool       `json:"published"`
	PublishedAt    *time.Time `json:"published_at"`
	SEOTitle       *string    `json:"seo_title"`
	SEODescription *string    `json:"seo_description"`
	ViewCount      int64      `json:"view_count"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type PostRepository interface {
	Create(ctx context.Context, post *BlogPost) error
	GetByID(ctx context.Context, id string) (*BlogPost, error)
	// GetPublishedBySlug returns only published posts; drafts are invisible by slug.
	GetPublishedBySlug(ctx context.Context, slug string) (*BlogPost, error)
	Fetch(ctx context.Context) ([]BlogPost, error)
	FetchPublished(ctx context.Context) ([]BlogPost, error)
	FetchRelated(ctx context.Context, category, excludeID string, limit int) ([]BlogPost, error)
	Update(ctx context.Context, post *BlogPost) error
	SetPublished(ctx context.Context, id string, published bool, publishedAt *time.Time, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	// IncrementViewCount atomically bumps view_count on a published post and
	// returns the new value. ErrNotFound when no published row matches.
	IncrementViewCount(ctx context.Context, id string, updatedAt time.Time) (int64, error)
}

type PostUsecase interface {
	CreatePost(ctx context.Context, post *BlogPost, asDraft bool) error
	GetPost(ctx context.Context, id string) (*BlogPost, error)
	GetPublishedPost(ctx context.Context, slug string) (*BlogPost, []BlogPost, error)
	ListPosts(ctx context.Context, term, status, category string) ([]BlogPost, error)
	ListPublishedPosts(ctx context.Context) ([]BlogPost, error)
	UpdatePost(ctx context.Context, post *BlogPost, asDraft bool) error
	TogglePublished(ctx context.Context, id string, publish bool) (*BlogPost, error)
	DeletePost(ctx context.Context, id string) error
	TrackView(ctx context.Context, id string) (int64, error)
}
