package postgres

import (
	"context"

	"tescilofisi-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type statsRepo struct {
	db *pgxpool.Pool
}

func NewStatsRepository(db *pgxpool.Pool) domain.StatsRepository {
	return &statsRepo{db: db}
}

func (r *statsRepo) GetStats(ctx context.Context) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{}

	err := r.db.QueryRow(ctx, `SELECT COUNT(*),
	       COUNT(*) FILTER (WHERE published),
	       COUNT(*) FILTER (WHERE NOT published),
	       COALESCE(SUM(view_count), 0)
	       FROM blog_posts`).Scan(
		&stats.TotalPosts, &stats.PublishedPosts, &stats.DraftPosts, &stats.TotalViews,
	)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, `SELECT COUNT(*),
	       COUNT(*) FILTER (WHERE status = 'new'),
	       COUNT(*) FILTER (WHERE status = 'read'),
	       COUNT(*) FILTER (WHERE status = 'replied'),
	       COUNT(*) FILTER (WHERE status = 'closed')
	       FROM contact_forms`).Scan(
		&stats.TotalContacts,
		&stats.ContactsByStatus.New, &stats.ContactsByStatus.Read,
		&stats.ContactsByStatus.Replied, &stats.ContactsByStatus.Closed,
	)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + postColumns + ` FROM blog_posts ORDER BY created_at DESC LIMIT 5`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		stats.RecentPosts = append(stats.RecentPosts, *post)
	}
	return stats, rows.Err()
}
