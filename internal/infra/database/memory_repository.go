package database

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/ligue-prospector/internal/entity"
)

// MemoryLeadRepository keeps leads in process. It is used when no database
// is configured.
type MemoryLeadRepository struct {
	mu    sync.RWMutex
	leads []*entity.Lead
	byID  map[string]*entity.Lead
	now   func() time.Time
}

func NewMemoryLeadRepository() *MemoryLeadRepository {
	return &MemoryLeadRepository{
		byID: make(map[string]*entity.Lead),
		now:  time.Now,
	}
}

func (r *MemoryLeadRepository) InsertBatch(_ context.Context, leads []entity.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for i := range leads {
		leads[i].ID = uuid.NewString()
		leads[i].CreatedAt = now
		leads[i].UpdatedAt = now

		stored := leads[i]
		r.leads = append(r.leads, &stored)
		r.byID[stored.ID] = &stored
	}
	return nil
}

func (r *MemoryLeadRepository) FindEligible(_ context.Context, zip string, ch entity.Channel, limit int) ([]entity.Lead, error) {
	if err := ch.Validate(); err != nil {
		return nil, err
	}
	leads := r.filter(func(l *entity.Lead) bool {
		return l.ZipCode == zip && l.Eligible(ch)
	})
	if limit >= 0 && len(leads) > limit {
		leads = leads[:limit]
	}
	return leads, nil
}

func (r *MemoryLeadRepository) MarkSent(_ context.Context, id string, ch entity.Channel, at time.Time) error {
	if err := ch.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("%w: lead %s not found", entity.ErrPersistenceFailed, id)
	}
	if !l.Sent(ch) {
		l.MarkSent(ch, at)
	}
	return nil
}

func (r *MemoryLeadRepository) ListByZip(_ context.Context, zip string) ([]entity.Lead, error) {
	return r.filter(func(l *entity.Lead) bool { return l.ZipCode == zip }), nil
}

// filter returns copies ordered by score, highest first, insertion order on ties.
func (r *MemoryLeadRepository) filter(keep func(*entity.Lead) bool) []entity.Lead {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []entity.Lead{}
	for _, l := range r.leads {
		if keep(l) {
			out = append(out, *l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].IntentScore > out[j].IntentScore
	})
	return out
}
