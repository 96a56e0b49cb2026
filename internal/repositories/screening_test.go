package repositories

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-screener/internal/models"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func TestScreeningRepositoryExpiry(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	repo := newScreeningRepository(30*time.Minute, clock.Now)

	screening := &models.Screening{ID: uuid.New(), Strategy: "rule"}
	if err := repo.Save(screening); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	found, err := repo.FindByID(screening.ID)
	if err != nil || found != screening {
		t.Fatalf("FindByID() = %v, %v", found, err)
	}

	if _, err := repo.FindByID(uuid.New()); !errors.Is(err, ErrScreeningNotFound) {
		t.Fatalf("expected ErrScreeningNotFound for unknown id, got %v", err)
	}

	clock.now = clock.now.Add(30 * time.Minute)
	if _, err := repo.FindByID(screening.ID); !errors.Is(err, ErrScreeningNotFound) {
		t.Fatalf("expected expired screening to be hidden, got %v", err)
	}
	if repo.Len() != 1 {
		t.Fatalf("expired entry must stay until purged, len = %d", repo.Len())
	}

	if purged := repo.Purge(clock.now); purged != 1 || repo.Len() != 0 {
		t.Fatalf("Purge() = %d, len = %d", purged, repo.Len())
	}
}

func TestScreeningRepositoryPurgeKeepsLiveEntries(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: start}
	repo := newScreeningRepository(time.Hour, clock.Now)

	old := &models.Screening{ID: uuid.New()}
	repo.Save(old)

	clock.now = start.Add(45 * time.Minute)
	fresh := &models.Screening{ID: uuid.New()}
	repo.Save(fresh)

	if purged := repo.Purge(start.Add(time.Hour)); purged != 1 {
		t.Fatalf("expected one purged entry, got %d", purged)
	}
	if _, err := repo.FindByID(fresh.ID); err != nil {
		t.Fatalf("fresh entry must survive purge: %v", err)
	}
}

func TestScreeningRepositoryRejectsMissingID(t *testing.T) {
	t.Parallel()

	repo := NewScreeningRepository(time.Minute)
	if err := repo.Save(nil); err == nil {
		t.Fatal("expected error for nil screening")
	}
	if err := repo.Save(&models.Screening{}); err == nil {
		t.Fatal("expected error for screening without id")
	}
}
