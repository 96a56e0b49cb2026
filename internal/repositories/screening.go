package repositories

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-screener/internal/models"
)

var ErrScreeningNotFound = errors.New("screening not found")

// ScreeningRepository keeps finished screenings in memory for a limited time,
// so their results can be downloaded after the page is rendered.
type ScreeningRepository interface {
	Save(screening *models.Screening) error
	FindByID(id uuid.UUID) (*models.Screening, error)
	// Purge drops every screening expired at now and returns how many were dropped.
	Purge(now time.Time) int
	Len() int
}

type screeningEntry struct {
	screening *models.Screening
	expiresAt time.Time
}

type screeningRepository struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[uuid.UUID]screeningEntry
	now     func() time.Time
}

func NewScreeningRepository(ttl time.Duration) ScreeningRepository {
	return newScreeningRepository(ttl, time.Now)
}

func newScreeningRepository(ttl time.Duration, now func() time.Time) *screeningRepository {
	return &screeningRepository{
		ttl:     ttl,
		entries: make(map[uuid.UUID]screeningEntry),
		now:     now,
	}
}

func (r *screeningRepository) Save(screening *models.Screening) error {
	if screening == nil || screening.ID == uuid.Nil {
		return fmt.Errorf("failed to save screening: missing id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[screening.ID] = screeningEntry{
		screening: screening,
		expiresAt: r.now().Add(r.ttl),
	}
	return nil
}

func (r *screeningRepository) FindByID(id uuid.UUID) (*models.Screening, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[id]
	if !ok || !r.now().Before(entry.expiresAt) {
		return nil, ErrScreeningNotFound
	}
	return entry.screening, nil
}

func (r *screeningRepository) Purge(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	purged := 0
	for id, entry := range r.entries {
		if !now.Before(entry.expiresAt) {
			delete(r.entries, id)
			purged++
		}
	}
	return purged
}

func (r *screeningRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
