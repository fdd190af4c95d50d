package feedback

import (
	"context"
	"time"
)

// Remaining reports how much edit time is left for a cached record.
func (m *Manager) Remaining(id string) (time.Duration, bool) {
	rec, ok := m.Cache.Get(id)
	if !ok {
		return 0, false
	}
	return RemainingEditTime(rec.CreatedAt, m.Now()), true
}

// RemainingAll recomputes the remaining edit time for every cached record.
func (m *Manager) RemainingAll() map[string]time.Duration {
	now := m.Now()
	records := m.Cache.List()

	out := make(map[string]time.Duration, len(records))
	for _, rec := range records {
		out[rec.ID] = RemainingEditTime(rec.CreatedAt, now)
	}
	return out
}

// Watch drives the countdown display: every interval it recomputes the
// remaining edit times from already-cached createdAt values and hands them
// to fn. It issues no network traffic and returns when ctx is done.
func (m *Manager) Watch(ctx context.Context, interval time.Duration, fn func(remaining map[string]time.Duration)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(m.RemainingAll())
		}
	}
}
