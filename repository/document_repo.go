package repository

import (
	"context"

	"pmis/models"
)

// DocumentRepository gathers what the document renderer needs.
type DocumentRepository struct {
	BillRepo RABillRepository
	OrgRepo  OrganizationRepository
}

func NewDocumentRepository(bills RABillRepository, orgs OrganizationRepository) *DocumentRepository {
	return &DocumentRepository{BillRepo: bills, OrgRepo: orgs}
}

// Load returns the bill and the current organization. The bill is nil when
// the number is unknown; the organization may be nil when none is set up.
func (r *DocumentRepository) Load(ctx context.Context, billNo string) (*models.RABill, *models.Organization, error) {
	bill, err := r.BillRepo.GetByBillNo(ctx, billNo)
	if err != nil || bill == nil {
		return nil, nil, err
	}
	org, err := r.OrgRepo.GetOrganization(ctx)
	if err != nil {
		return nil, nil, err
	}
	return bill, org, nil
}
