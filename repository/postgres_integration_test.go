package repository

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"

	"pmis/billing"
	"pmis/db"
	"pmis/models"
)

func openTestPostgres(t *testing.T) *sql.DB {
	t.Helper()
	url := os.Getenv("TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("TEST_POSTGRES_URL not set")
	}
	if err := db.RunMigrations(url, "file://../db/migrations"); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	conn, err := sql.Open("postgres", url)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestPostgresRABillRepo(t *testing.T) {
	conn := openTestPostgres(t)
	ctx := context.Background()
	repo := NewPostgresRABillRepo(conn)

	billNo := billing.NewBillNo(time.Now())
	t.Cleanup(func() { _, _ = conn.Exec(`DELETE FROM ra_bill WHERE bill_no = $1`, billNo) })

	snap := snapshotFor(billNo, "P-IT", "V-IT")
	if err := NewBillGateway(repo).Submit(ctx, snap); err != nil {
		t.Fatal(err)
	}
	if err := NewBillGateway(repo).Submit(ctx, snap); !errors.Is(err, billing.ErrDuplicateBill) {
		t.Fatalf("duplicate = %v", err)
	}

	got, err := repo.GetByBillNo(ctx, billNo)
	if err != nil || got == nil {
		t.Fatalf("get = %v, %v", got, err)
	}
	if !got.Snapshot.Summary.Equal(snap.Summary) {
		t.Errorf("summary changed on round trip: %+v", got.Snapshot.Summary)
	}

	list, err := repo.List(ctx, models.RABillFilter{ProjectRef: "P-IT", CounterpartyRef: "V-IT"})
	if err != nil || len(list) == 0 {
		t.Fatalf("list = %v, %v", list, err)
	}

	if err := repo.SetDocument(ctx, billNo, "/files/a.pdf", time.Now()); err != nil {
		t.Fatal(err)
	}
	if err := repo.SetDocument(ctx, "RA-NOPE", "/files/a.pdf", time.Now()); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown = %v", err)
	}
}

func TestPostgresOrganizationRepo(t *testing.T) {
	conn := openTestPostgres(t)
	ctx := context.Background()
	repo := NewPostgresOrganizationRepo(conn)

	org := &models.Organization{
		Name:        "IDC",
		EMDAmount:   billing.ParseAmount("250000.50"),
		Contacts:    []models.ContactEntry{{Number: "1", Label: "Office"}},
		Signatories: []models.Signatory{{Role: "Approved by", Name: "A"}},
	}
	if err := repo.SaveOrganization(ctx, org); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _, _ = conn.Exec(`DELETE FROM organization WHERE id = $1`, org.ID) })

	got, err := repo.GetOrganization(ctx)
	if err != nil || got == nil {
		t.Fatalf("get = %v, %v", got, err)
	}
	if got.ID != org.ID || !got.EMDAmount.Equal(org.EMDAmount.Decimal) || len(got.Signatories) != 1 {
		t.Errorf("round trip = %+v", got)
	}
}
