package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"pmis/models"
)

type PostgresOrganizationRepo struct {
	DB *sql.DB
}

func NewPostgresOrganizationRepo(db *sql.DB) *PostgresOrganizationRepo {
	return &PostgresOrganizationRepo{DB: db}
}

// SaveOrganization updates the row with org.ID, or inserts a new one.
func (r *PostgresOrganizationRepo) SaveOrganization(ctx context.Context, org *models.Organization) error {
	if org.CreatedAt.IsZero() {
		org.CreatedAt = time.Now().UTC()
	}

	contactsJSON, err := json.Marshal(nonNilContacts(org.Contacts))
	if err != nil {
		return err
	}
	signatoriesJSON, err := json.Marshal(nonNilSignatories(org.Signatories))
	if err != nil {
		return err
	}

	if org.ID > 0 {
		_, err = r.DB.ExecContext(ctx, `
			UPDATE organization
			SET name=$1, address=$2, city=$3, state=$4, pincode=$5, gstin=$6,
				footnote=$7, contacts=$8, emd_amount=$9, emd_reference=$10, signatories=$11
			WHERE id=$12
		`, org.Name, org.Address, org.City, org.State, org.Pincode, org.GSTIN,
			org.Footnote, string(contactsJSON), org.EMDAmount.Decimal, org.EMDReference, string(signatoriesJSON), org.ID)
		return err
	}

	return r.DB.QueryRowContext(ctx, `
		INSERT INTO organization
		(name, address, city, state, pincode, gstin, footnote, contacts, emd_amount, emd_reference, signatories, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING id
	`, org.Name, org.Address, org.City, org.State, org.Pincode, org.GSTIN, org.Footnote,
		string(contactsJSON), org.EMDAmount.Decimal, org.EMDReference, string(signatoriesJSON), org.CreatedAt).Scan(&org.ID)
}

// GetOrganization returns the latest record, or nil when none is saved.
func (r *PostgresOrganizationRepo) GetOrganization(ctx context.Context) (*models.Organization, error) {
	org := &models.Organization{}
	var contactsJSON, signatoriesJSON []byte

	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, address, city, state, pincode, gstin, footnote,
			contacts, emd_amount, emd_reference, signatories, created_at
		FROM organization
		ORDER BY id DESC LIMIT 1
	`).Scan(&org.ID, &org.Name, &org.Address, &org.City, &org.State, &org.Pincode, &org.GSTIN,
		&org.Footnote, &contactsJSON, &org.EMDAmount.Decimal, &org.EMDReference, &signatoriesJSON, &org.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if len(contactsJSON) > 0 {
		if err := json.Unmarshal(contactsJSON, &org.Contacts); err != nil {
			return nil, err
		}
	}
	if len(signatoriesJSON) > 0 {
		if err := json.Unmarshal(signatoriesJSON, &org.Signatories); err != nil {
			return nil, err
		}
	}
	return org, nil
}

func nonNilContacts(c []models.ContactEntry) []models.ContactEntry {
	if c == nil {
		return []models.ContactEntry{}
	}
	return c
}

func nonNilSignatories(s []models.Signatory) []models.Signatory {
	if s == nil {
		return []models.Signatory{}
	}
	return s
}
