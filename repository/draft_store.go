package repository

import (
	"context"
	"sync"
	"time"

	"pmis/models"
)

// DraftStore keeps bills that are still being edited. Get returns
// ErrNotFound for unknown or expired drafts.
type DraftStore interface {
	Get(ctx context.Context, id string) (*models.Draft, error)
	Save(ctx context.Context, d *models.Draft) error
	Delete(ctx context.Context, id string) error
}

type memoryDraft struct {
	draft   models.Draft
	expires time.Time
}

type MemoryDraftStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	drafts map[string]memoryDraft
	now    func() time.Time
}

func NewMemoryDraftStore(ttl time.Duration) *MemoryDraftStore {
	return &MemoryDraftStore{
		ttl:    ttl,
		drafts: make(map[string]memoryDraft),
		now:    time.Now,
	}
}

func (s *MemoryDraftStore) Get(_ context.Context, id string) (*models.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[id]
	if !ok {
		return nil, ErrNotFound
	}
	if s.ttl > 0 && s.now().After(d.expires) {
		delete(s.drafts, id)
		return nil, ErrNotFound
	}
	cp := d.draft
	return &cp, nil
}

func (s *MemoryDraftStore) Save(_ context.Context, d *models.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	d.UpdatedAt = now.UTC()
	s.drafts[d.ID] = memoryDraft{draft: *d, expires: now.Add(s.ttl)}
	return nil
}

func (s *MemoryDraftStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
	return nil
}
