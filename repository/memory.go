package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"pmis/billing"
	"pmis/models"
)

// MemoryRABillRepo keeps bills in process memory. It backs DB_TYPE=memory
// and the handler tests.
type MemoryRABillRepo struct {
	mu    sync.RWMutex
	seq   int64
	bills map[string]*models.RABill
}

func NewMemoryRABillRepo() *MemoryRABillRepo {
	return &MemoryRABillRepo{bills: make(map[string]*models.RABill)}
}

func (r *MemoryRABillRepo) Create(_ context.Context, bill *models.RABill) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bills[bill.BillNo]; ok {
		return fmt.Errorf("bill %s: %w", bill.BillNo, billing.ErrDuplicateBill)
	}
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = time.Now().UTC()
	}
	if bill.Status == "" {
		bill.Status = models.RABillStatusGenerated
	}
	r.seq++
	bill.ID = r.seq
	cp := *bill
	r.bills[bill.BillNo] = &cp
	return nil
}

func (r *MemoryRABillRepo) GetByBillNo(_ context.Context, billNo string) (*models.RABill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bills[billNo]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *MemoryRABillRepo) List(_ context.Context, filter models.RABillFilter) ([]*models.RABill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*models.RABill{}
	for _, b := range r.bills {
		if filter.ProjectRef != "" && b.Snapshot.Input.ProjectRef != filter.ProjectRef {
			continue
		}
		if filter.CounterpartyRef != "" && b.Snapshot.Input.CounterpartyRef != filter.CounterpartyRef {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if n := listLimit(filter); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (r *MemoryRABillRepo) SetDocument(_ context.Context, billNo, url string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bills[billNo]
	if !ok {
		return ErrNotFound
	}
	b.DocumentURL = &url
	b.DocumentCreatedAt = &at
	return nil
}

type MemoryOrganizationRepo struct {
	mu  sync.RWMutex
	org *models.Organization
}

func NewMemoryOrganizationRepo() *MemoryOrganizationRepo {
	return &MemoryOrganizationRepo{}
}

func (r *MemoryOrganizationRepo) SaveOrganization(_ context.Context, org *models.Organization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if org.CreatedAt.IsZero() {
		org.CreatedAt = time.Now().UTC()
	}
	org.ID = 1
	cp := *org
	r.org = &cp
	return nil
}

func (r *MemoryOrganizationRepo) GetOrganization(_ context.Context) (*models.Organization, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.org == nil {
		return nil, nil
	}
	cp := *r.org
	return &cp, nil
}
