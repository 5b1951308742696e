package draft

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
)

// MemoryRepository keeps drafts in process. Entries are stored encoded so callers never share state.
type MemoryRepository struct {
	mu     sync.RWMutex
	drafts map[uuid.UUID]memoryEntry
	ttl    time.Duration
	now    func() time.Time
}

type memoryEntry struct {
	raw       []byte
	updatedAt time.Time
}

// NewMemoryRepository creates an in-memory repository; drafts not saved within ttl are gone.
func NewMemoryRepository(ttl time.Duration) *MemoryRepository {
	return &MemoryRepository{
		drafts: make(map[uuid.UUID]memoryEntry),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Save stores the draft, replacing any previous version.
func (r *MemoryRepository) Save(_ context.Context, d *calendar.Draft) error {
	raw, err := encode(d)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.drafts[d.ID] = memoryEntry{raw: raw, updatedAt: r.now()}
	return nil
}

// Get returns a copy of the draft.
func (r *MemoryRepository) Get(_ context.Context, id uuid.UUID) (*calendar.Draft, error) {
	r.mu.RLock()
	entry, ok := r.drafts[id]
	r.mu.RUnlock()

	if !ok || r.expired(entry) {
		return nil, ErrDraftNotFound
	}
	return decode(entry.raw)
}

// Delete removes the draft. Unknown ids are ignored.
func (r *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, id)
	return nil
}

// DeleteExpired drops drafts older than the ttl and returns how many were removed.
func (r *MemoryRepository) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for id, entry := range r.drafts {
		if r.expired(entry) {
			delete(r.drafts, id)
			removed++
		}
	}
	return removed, nil
}

func (r *MemoryRepository) expired(e memoryEntry) bool {
	return r.ttl > 0 && r.now().Sub(e.updatedAt) > r.ttl
}
