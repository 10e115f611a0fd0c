package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"tescilofisi-backend/internal/domain"
	"tescilofisi-backend/pkg/apperror"
	"tescilofisi-backend/pkg/slug"
)

// DefaultAuthor is used when the editor leaves the author field empty.
const DefaultAuthor = "Tescilofisi Uzmanları"

type postUsecase struct {
	postRepo domain.PostRepository
	now      func() time.Time
}

func NewPostUsecase(postRepo domain.PostRepository) domain.PostUsecase {
	return &postUsecase{postRepo: postRepo, now: time.Now}
}

// NewPostUsecaseWithClock is used by tests to control timestamps.
func NewPostUsecaseWithClock(postRepo domain.PostRepository, now func() time.Time) domain.PostUsecase {
	return &postUsecase{postRepo: postRepo, now: now}
}

// ParseTags splits a comma-separated tag string, trims each entry and drops
// empties, preserving order.
func ParseTags(s string) []string {
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

func (u *postUsecase) CreatePost(ctx context.Context, post *domain.BlogPost, asDraft bool) error {
	if err := u.prepare(post, asDraft, false); err != nil {
		return err
	}

	err := u.postRepo.Create(ctx, post)
	if errors.Is(err, domain.ErrSlugTaken) {
		return apperror.Conflict("Bu URL slug zaten kullanılıyor")
	}
	return err
}

func (u *postUsecase) UpdatePost(ctx context.Context, post *domain.BlogPost, asDraft bool) error {
	prior, err := u.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return err
	}

	wasPublished := prior.Published
	if err := u.prepare(post, asDraft, wasPublished); err != nil {
		return err
	}
	if !asDraft && post.Published && wasPublished {
		// Still live; the original publish time survives the edit.
		post.PublishedAt = prior.PublishedAt
	}
	post.CreatedAt = prior.CreatedAt
	post.ViewCount = prior.ViewCount

	err = u.postRepo.Update(ctx, post)
	if errors.Is(err, domain.ErrSlugTaken) {
		return apperror.Conflict("Bu URL slug zaten kullanılıyor")
	}
	return err
}

// prepare applies the editor save semantics shared by create and update:
// draft intent forces published=false, publish intent stamps published_at
// exactly when the post transitions into the published state.
func (u *postUsecase) prepare(post *domain.BlogPost, asDraft, wasPublished bool) error {
	post.Title = strings.TrimSpace(post.Title)
	if post.Title == "" {
		return apperror.BadRequest("Başlık zorunludur")
	}
	if post.Category == "" {
		return apperror.BadRequest("Kategori zorunludur")
	}
	if !domain.ValidCategory(post.Category) {
		return apperror.BadRequest("Geçersiz kategori")
	}

	if post.Slug == "" {
		post.Slug = slug.Make(post.Title)
	}
	if !slug.Valid(post.Slug) {
		return apperror.BadRequest("URL slug yalnızca küçük harf, rakam ve tire içerebilir")
	}
	if post.Author == "" {
		post.Author = DefaultAuthor
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	now := u.now()
	if asDraft {
		post.Published = false
		post.PublishedAt = nil
	} else if post.Published {
		if !wasPublished {
			post.PublishedAt = &now
		}
	} else {
		post.PublishedAt = nil
	}
	post.UpdatedAt = now
	return nil
}

func (u *postUsecase) GetPost(ctx context.Context, id string) (*domain.BlogPost, error) {
	return u.postRepo.GetByID(ctx, id)
}

// GetPublishedPost returns the post plus up to three related published posts
// from the same category.
func (u *postUsecase) GetPublishedPost(ctx context.Context, slugStr string) (*domain.BlogPost, []domain.BlogPost, error) {
	post, err := u.postRepo.GetPublishedBySlug(ctx, slugStr)
	if err != nil {
		return nil, nil, err
	}

	related, err := u.postRepo.FetchRelated(ctx, post.Category, post.ID, 3)
	if err != nil {
		// Related posts are decorative; the article itself still renders.
		related = nil
	}
	return post, related, nil
}

func (u *postUsecase) ListPosts(ctx context.Context, term, status, category string) ([]domain.BlogPost, error) {
	posts, err := u.postRepo.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return FilterPosts(posts, term, status, category), nil
}

func (u *postUsecase) ListPublishedPosts(ctx context.Context) ([]domain.BlogPost, error) {
	return u.postRepo.FetchPublished(ctx)
}

func (u *postUsecase) TogglePublished(ctx context.Context, id string, publish bool) (*domain.BlogPost, error) {
	now := u.now()
	var publishedAt *time.Time
	if publish {
		publishedAt = &now
	}

	if err := u.postRepo.SetPublished(ctx, id, publish, publishedAt, now); err != nil {
		return nil, err
	}
	return u.postRepo.GetByID(ctx, id)
}

func (u *postUsecase) DeletePost(ctx context.Context, id string) error {
	return u.postRepo.Delete(ctx, id)
}

func (u *postUsecase) TrackView(ctx context.Context, id string) (int64, error) {
	return u.postRepo.IncrementViewCount(ctx, id, u.now())
}
