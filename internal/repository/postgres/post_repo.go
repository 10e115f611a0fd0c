package postgres

import (
	"context"
	"errors"
	"time"

	"tescilofisi-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const postColumns = `id, title, slug, excerpt, content, author, category, tags, featured_image,
	published, published_at, seo_title, seo_description, view_count, created_at, updated_at`

type postRepo struct {
	db *pgxpool.Pool
}

func NewPostRepository(db *pgxpool.Pool) domain.PostRepository {
	return &postRepo{db: db}
}

func (r *postRepo) Create(ctx context.Context, post *domain.BlogPost) error {
	query := `INSERT INTO blog_posts (title, slug, excerpt, content, author, category, tags, featured_image,
	              published, published_at, seo_title, seo_description, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), $13)
	          RETURNING id, view_count, created_at`
	err := r.db.QueryRow(ctx, query,
		post.Title, post.Slug, post.Excerpt, post.Content, post.Author, post.Category,
		pq.Array(post.Tags), post.FeaturedImage,
		post.Published, post.PublishedAt, post.SEOTitle, post.SEODescription,
		post.UpdatedAt,
	).Scan(&post.ID, &post.ViewCount, &post.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrSlugTaken
	}
	return err
}

func (r *postRepo) GetByID(ctx context.Context, id string) (*domain.BlogPost, error) {
	query := `SELECT ` + postColumns + ` FROM blog_posts WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *postRepo) GetPublishedBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	query := `SELECT ` + postColumns + ` FROM blog_posts WHERE slug = $1 AND published = true`
	return r.scanOne(r.db.QueryRow(ctx, query, slug))
}

func (r *postRepo) Fetch(ctx context.Context) ([]domain.BlogPost, error) {
	query := `SELECT ` + postColumns + ` FROM blog_posts ORDER BY created_at DESC`
	return r.fetch(ctx, query)
}

func (r *postRepo) FetchPublished(ctx context.Context) ([]domain.BlogPost, error) {
	query := `SELECT ` + postColumns + ` FROM blog_posts
	          WHERE published = true ORDER BY published_at DESC`
	return r.fetch(ctx, query)
}

func (r *postRepo) FetchRelated(ctx context.Context, category, excludeID string, limit int) ([]domain.BlogPost, error) {
	query := `SELECT ` + postColumns + ` FROM blog_posts
	          WHERE published = true AND category = $1 AND id <> $2
	          ORDER BY published_at DESC LIMIT $3`
	return r.fetch(ctx, query, category, excludeID, limit)
}

func (r *postRepo) Update(ctx context.Context, post *domain.BlogPost) error {
	query := `UPDATE blog_posts SET
		title = $2,
		slug = $3,
		excerpt = $4,
		content = $5,
		author = $6,
		category = $7,
		tags = $8,
		featured_image = $9,
		published = $10,
		published_at = $11,
		seo_title = $12,
		seo_description = $13,
		updated_at = $14
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		post.ID, post.Title, post.Slug, post.Excerpt, post.Content, post.Author, post.Category,
		pq.Array(post.Tags), post.FeaturedImage, post.Published, post.PublishedAt,
		post.SEOTitle, post.SEODescription, post.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrSlugTaken
	}
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postRepo) SetPublished(ctx context.Context, id string, published bool, publishedAt *time.Time, updatedAt time.Time) error {
	query := `UPDATE blog_posts SET published = $2, published_at = $3, updated_at = $4 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, published, publishedAt, updatedAt)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM blog_posts WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncrementViewCount bumps the counter atomically in SQL, so two concurrent
// viewers never read-then-write the same value. Draft posts are not counted.
func (r *postRepo) IncrementViewCount(ctx context.Context, id string, updatedAt time.Time) (int64, error) {
	query := `UPDATE blog_posts SET view_count = view_count + 1, updated_at = $2
	          WHERE id = $1 AND published = true
	          RETURNING view_count`
	var count int64
	err := r.db.QueryRow(ctx, query, id, updatedAt).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postRepo) fetch(ctx context.Context, query string, args ...interface{}) ([]domain.BlogPost, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.BlogPost
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

func (r *postRepo) scanOne(row pgx.Row) (*domain.BlogPost, error) {
	post, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

func scanPost(row pgx.Row) (*domain.BlogPost, error) {
	var post domain.BlogPost
	err := row.Scan(
		&post.ID, &post.Title, &post.Slug, &post.Excerpt, &post.Content, &post.Author,
		&post.Category, pq.Array(&post.Tags), &post.FeaturedImage,
		&post.Published, &post.PublishedAt, &post.SEOTitle, &post.SEODescription,
		&post.ViewCount, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint error
// (23505), which here can only be the slug index.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
