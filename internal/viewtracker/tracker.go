// Package viewtracker counts a blog post view at most once per visitor
// session, after a settle delay that filters out immediate bounces.
package viewtracker

import (
	"context"
	"time"

	"tescilofisi-backend/internal/domain"
)

// SettleDelay is how long a reader must stay on the page before the view
// counts.
const SettleDelay = 3 * time.Second

// MarkerStore is the "already viewed" capability. Any session- or
// visitor-bound key-value store satisfies it.
type MarkerStore interface {
	Has(key string) bool
	Set(key string)
}

// Tracker drives the per-view state machine: wait out the settle delay,
// consult the visitor marker, then increment through the post usecase.
type Tracker struct {
	posts   domain.PostUsecase
	markers MarkerStore
	delay   time.Duration
}

func New(posts domain.PostUsecase, markers MarkerStore) *Tracker {
	return &Tracker{posts: posts, markers: markers, delay: SettleDelay}
}

// NewWithDelay overrides the settle delay. The HTTP endpoint uses a zero
// delay because the browser already waits out the settle period before
// calling; embedded use and tests pass their own.
func NewWithDelay(posts domain.PostUsecase, markers MarkerStore, delay time.Duration) *Tracker {
	return &Tracker{posts: posts, markers: markers, delay: delay}
}

// MarkerKey builds the dedup key for one visitor viewing one post.
func MarkerKey(visitor, postID string) string {
	return visitor + ":viewed_" + postID
}

// Track waits the settle delay and then records one view of postID for
// visitor. If ctx is cancelled before the delay elapses (reader navigated
// away), nothing is sent and no marker is set, so a later visit in the same
// session can still count. A marker is set only after a successful
// increment.
//
// Returns the new view count, or 0 with a nil error when the view was
// deduplicated by an existing marker.
func (t *Tracker) Track(ctx context.Context, visitor, postID string) (int64, error) {
	if t.delay > 0 {
		timer := time.NewTimer(t.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-timer.C:
		}
	}

	key := MarkerKey(visitor, postID)
	if t.markers.Has(key) {
		return 0, nil
	}

	count, err := t.posts.TrackView(ctx, postID)
	if err != nil {
		return 0, err
	}
	t.markers.Set(key)
	return count, nil
}
