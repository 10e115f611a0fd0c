package usecase

import (
	"strings"

	"tescilofisi-backend/internal/domain"
)

// FilterAll is the sentinel that disables a categorical filter.
const FilterAll = "all"

// Post status filter values (FilterAll disables).
const (
	PostStatusPublished = "published"
	PostStatusDraft     = "draft"
)

// FilterPosts returns the subset of posts matching the free-text term
// (case-insensitive substring over title and category), the status filter
// ("published"/"draft") and the category filter. Filters compose with AND and
// the input order is preserved. Pure and total: an empty collection or a term
// matching nothing yields an empty result, never an error.
func FilterPosts(posts []domain.BlogPost, term, status, category string) []domain.BlogPost {
	term = strings.ToLower(term)

	filtered := make([]domain.BlogPost, 0, len(posts))
	for _, p := range posts {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Title), term) &&
			!strings.Contains(strings.ToLower(p.Category), term) {
			continue
		}
		if status != "" && status != FilterAll {
			if status == PostStatusPublished && !p.Published {
				continue
			}
			if status == PostStatusDraft && p.Published {
				continue
			}
		}
		if category != "" && category != FilterAll && p.Category != category {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// FilterContacts returns the subset of messages matching the free-text term
// (case-insensitive substring over name, email and message body), the status
// filter and the service filter. Same composition rules as FilterPosts.
func FilterContacts(msgs []domain.ContactMessage, term, status, service string) []domain.ContactMessage {
	term = strings.ToLower(term)

	filtered := make([]domain.ContactMessage, 0, len(msgs))
	for _, m := range msgs {
		if term != "" &&
			!strings.Contains(strings.ToLower(m.Name), term) &&
			!strings.Contains(strings.ToLower(m.Email), term) &&
			!strings.Contains(strings.ToLower(m.Message), term) {
			continue
		}
		if status != "" && status != FilterAll && m.Status != status {
			continue
		}
		if service != "" && service != FilterAll && m.Service != service {
			continue
		}
		filtered = append(filtered, m)
	}
	return filtered
}

// ContactCounts summarizes a full contact collection. Counts always come from
// the base collection, not a filtered subset.
type ContactCounts struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}

// CountContacts computes totals and per-status counts.
func CountContacts(msgs []domain.ContactMessage) ContactCounts {
	counts := ContactCounts{ByStatus: make(map[string]int, len(domain.ContactStatuses))}
	for _, s := range domain.ContactStatuses {
		counts.ByStatus[s] = 0
	}
	for _, m := range msgs {
		counts.Total++
		counts.ByStatus[m.Status]++
	}
	return counts
}

// DistinctServices lists the service values present in the collection, in
// first-seen order, for building the service filter dropdown.
func DistinctServices(msgs []domain.ContactMessage) []string {
	seen := make(map[string]bool, len(msgs))
	var services []string
	for _, m := range msgs {
		if !seen[m.Service] {
			seen[m.Service] = true
			services = append(services, m.Service)
		}
	}
	return services
}
