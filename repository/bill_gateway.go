package repository

import (
	"context"

	"pmis/billing"
	"pmis/document"
	"pmis/models"
)

// BillGateway is the server side of the persistence gateway: it stores a
// frozen snapshot as a generated bill.
type BillGateway struct {
	Bills RABillRepository
}

func NewBillGateway(bills RABillRepository) *BillGateway {
	return &BillGateway{Bills: bills}
}

func (g *BillGateway) Submit(ctx context.Context, snap billing.Snapshot) error {
	_, err := g.Store(ctx, snap)
	return err
}

// Store saves the snapshot and returns the stored record.
func (g *BillGateway) Store(ctx context.Context, snap billing.Snapshot) (*models.RABill, error) {
	fp, err := document.Fingerprint(snap)
	if err != nil {
		return nil, err
	}
	bill := &models.RABill{
		BillNo:      snap.Input.BillNo,
		Status:      models.RABillStatusGenerated,
		Snapshot:    snap,
		Fingerprint: fp,
	}
	if err := g.Bills.Create(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}
