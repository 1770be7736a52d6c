package repository

import (
	"context"
	"time"

	"pmis/models"
)

// RABillRepository stores generated bills. Create fails with
// billing.ErrDuplicateBill when the bill number is taken; GetByBillNo returns
// nil, nil for an unknown number.
type RABillRepository interface {
	Create(ctx context.Context, bill *models.RABill) error
	GetByBillNo(ctx context.Context, billNo string) (*models.RABill, error)
	List(ctx context.Context, filter models.RABillFilter) ([]*models.RABill, error)
	SetDocument(ctx context.Context, billNo, url string, at time.Time) error
}

const defaultListLimit = 100

func listLimit(f models.RABillFilter) int {
	if f.Limit <= 0 || f.Limit > 1000 {
		return defaultListLimit
	}
	return f.Limit
}
