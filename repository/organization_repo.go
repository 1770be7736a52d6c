package repository

import (
	"context"

	"pmis/models"
)

// OrganizationRepository stores the issuing authority's letterhead. There is
// one current record.
type OrganizationRepository interface {
	SaveOrganization(ctx context.Context, org *models.Organization) error
	GetOrganization(ctx context.Context) (*models.Organization, error)
}
