package domain

import "context"

// ContactStatusCounts breaks the contact total down per status.
type ContactStatusCounts struct {
	New     int64 `json:"new"`
	Read    int64 `json:"read"`
	Replied int64 `json:"replied"`
	Closed  int64 `json:"closed"`
}

// DashboardStats backs the admin dashboard cards.
type DashboardStats struct {
	TotalPosts       int64               `json:"total_posts"`
	PublishedPosts   int64               `json:"published_posts"`
	DraftPosts       int64               `json:"draft_posts"`
	TotalViews       int64               `json:"total_views"`
	TotalContacts    int64               `json:"total_contacts"`
	ContactsByStatus ContactStatusCounts `json:"contacts_by_status"`
	RecentPosts      []BlogPost          `json:"recent_posts"`
}

type StatsRepository interface {
	GetStats(ctx context.Context) (*DashboardStats, error)
}

type StatsUsecase interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}
