package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"pmis/billing"
	"pmis/models"
)

type PostgresRABillRepo struct {
	DB *sql.DB
}

func NewPostgresRABillRepo(db *sql.DB) *PostgresRABillRepo {
	return &PostgresRABillRepo{DB: db}
}

const uniqueViolation = "23505"

func (r *PostgresRABillRepo) Create(ctx context.Context, bill *models.RABill) error {
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = time.Now().UTC()
	}
	if bill.Status == "" {
		bill.Status = models.RABillStatusGenerated
	}

	snapJSON, err := json.Marshal(bill.Snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	s := bill.Snapshot.Summary
	in := bill.Snapshot.Input
	err = r.DB.QueryRowContext(ctx, `
		INSERT INTO ra_bill
		(bill_no, status, project_ref, counterparty_ref, gross_amount, total_amount,
		 total_deductions, net_payable, snapshot, fingerprint, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id
	`, bill.BillNo, bill.Status, in.ProjectRef, in.CounterpartyRef,
		s.GrossAmount.Decimal, s.TotalAmount.Decimal, s.TotalDeductions.Decimal, s.NetPayable.Decimal,
		string(snapJSON), bill.Fingerprint, bill.CreatedAt).Scan(&bill.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("bill %s: %w", bill.BillNo, billing.ErrDuplicateBill)
		}
		return err
	}
	return nil
}

const selectRABill = `
	SELECT id, bill_no, status, snapshot, fingerprint, created_at, document_url, document_created_at
	FROM ra_bill`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRABill(row rowScanner) (*models.RABill, error) {
	var (
		bill     models.RABill
		snapJSON []byte
		docURL   sql.NullString
		docAt    sql.NullTime
	)
	if err := row.Scan(&bill.ID, &bill.BillNo, &bill.Status, &snapJSON, &bill.Fingerprint,
		&bill.CreatedAt, &docURL, &docAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(snapJSON, &bill.Snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", bill.BillNo, err)
	}
	if docURL.Valid {
		bill.DocumentURL = &docURL.String
	}
	if docAt.Valid {
		t := docAt.Time
		bill.DocumentCreatedAt = &t
	}
	return &bill, nil
}

func (r *PostgresRABillRepo) GetByBillNo(ctx context.Context, billNo string) (*models.RABill, error) {
	bill, err := scanRABill(r.DB.QueryRowContext(ctx, selectRABill+` WHERE bill_no = $1`, billNo))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return bill, err
}

func (r *PostgresRABillRepo) List(ctx context.Context, filter models.RABillFilter) ([]*models.RABill, error) {
	var (
		where []string
		args  []any
	)
	if filter.ProjectRef != "" {
		args = append(args, filter.ProjectRef)
		where = append(where, fmt.Sprintf("project_ref = $%d", len(args)))
	}
	if filter.CounterpartyRef != "" {
		args = append(args, filter.CounterpartyRef)
		where = append(where, fmt.Sprintf("counterparty_ref = $%d", len(args)))
	}

	query := selectRABill
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, listLimit(filter))
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d", len(args))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bills := []*models.RABill{}
	for rows.Next() {
		bill, err := scanRABill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}
	return bills, rows.Err()
}

func (r *PostgresRABillRepo) SetDocument(ctx context.Context, billNo, url string, at time.Time) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE ra_bill SET document_url = $1, document_created_at = $2 WHERE bill_no = $3
	`, url, at, billNo)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
