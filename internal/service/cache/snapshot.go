// Package cache keeps the most recent run's report in memory for the
// serve mode. Nothing is persisted across restarts.
package cache

import (
	"sync"
	"time"

	"BulletCatalyst/internal/domain/models"
)

// Snapshot holds the latest report and hides it once it outlives the
// configured lifetime.
type Snapshot struct {
	mu     sync.RWMutex
	report *models.Report
	ttl    time.Duration
	now    func() time.Time
}

func NewSnapshot(ttl time.Duration) *Snapshot {
	return &Snapshot{ttl: ttl, now: time.Now}
}

// Set replaces the stored report.
func (s *Snapshot) Set(r *models.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = r
}

// Get returns the stored report, or false when none exists yet or the
// latest one has gone stale.
func (s *Snapshot) Get() (*models.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.report == nil {
		return nil, false
	}
	if s.ttl > 0 && s.now().Sub(s.report.GeneratedAt) > s.ttl {
		return nil, false
	}
	return s.report, true
}

// Age reports how old the stored report is; zero when empty.
func (s *Snapshot) Age() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.report == nil {
		return 0
	}
	return s.now().Sub(s.report.GeneratedAt)
}
