package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"pmis/billing"
	dbmongo "pmis/db/mongo"
	"pmis/models"
)

func openTestMongo(t *testing.T) *mongo.Database {
	t.Helper()
	url := os.Getenv("TEST_MONGO_URL")
	if url == "" {
		t.Skip("TEST_MONGO_URL not set")
	}
	conn := dbmongo.NewMongoDB(url, fmt.Sprintf("pmis_test_%d", time.Now().UnixNano()))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := conn.Connect(ctx); err != nil {
		t.Fatalf("connect: %v", err)
	}
	database := conn.Database()
	t.Cleanup(func() {
		_ = database.Drop(context.Background())
		_ = conn.Disconnect(context.Background())
	})
	return database
}

func TestMongoRABillRepo(t *testing.T) {
	database := openTestMongo(t)
	ctx := context.Background()
	repo := NewMongoRABillRepo(database)

	billNo := billing.NewBillNo(time.Now())
	snap := snapshotFor(billNo, "P-IT", "V-IT")
	if err := NewBillGateway(repo).Submit(ctx, snap); err != nil {
		t.Fatal(err)
	}
	if err := NewBillGateway(repo).Submit(ctx, snap); !errors.Is(err, billing.ErrDuplicateBill) {
		t.Fatalf("duplicate = %v", err)
	}
	if err := NewBillGateway(repo).Submit(ctx, snapshotFor(billing.NewBillNo(time.Now()), "P-IT", "V-OTHER")); err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetByBillNo(ctx, billNo)
	if err != nil || got == nil {
		t.Fatalf("get = %v, %v", got, err)
	}
	if !got.Snapshot.Summary.Equal(snap.Summary) {
		t.Errorf("summary changed on round trip: %+v", got.Snapshot.Summary)
	}
	if missing, err := repo.GetByBillNo(ctx, "RA-NOPE"); missing != nil || err != nil {
		t.Errorf("missing = %v, %v", missing, err)
	}

	list, err := repo.List(ctx, models.RABillFilter{ProjectRef: "P-IT", CounterpartyRef: "V-IT"})
	if err != nil || len(list) != 1 || list[0].BillNo != billNo {
		t.Fatalf("list = %v, %v", list, err)
	}
	if all, _ := repo.List(ctx, models.RABillFilter{ProjectRef: "P-IT"}); len(all) != 2 {
		t.Errorf("project list = %d bills", len(all))
	}

	if err := repo.SetDocument(ctx, billNo, "/files/a.pdf", time.Now()); err != nil {
		t.Fatal(err)
	}
	if got, _ := repo.GetByBillNo(ctx, billNo); got.DocumentURL == nil || *got.DocumentURL != "/files/a.pdf" {
		t.Errorf("document url = %v", got.DocumentURL)
	}
	if err := repo.SetDocument(ctx, "RA-NOPE", "/files/a.pdf", time.Now()); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown = %v", err)
	}
}

func TestMongoOrganizationRepo(t *testing.T) {
	database := openTestMongo(t)
	ctx := context.Background()
	repo := NewMongoOrganizationRepo(database)

	if org, err := repo.GetOrganization(ctx); org != nil || err != nil {
		t.Fatalf("empty = %v, %v", org, err)
	}

	org := &models.Organization{
		Name:        "IDC",
		EMDAmount:   billing.ParseAmount("250000.50"),
		Contacts:    []models.ContactEntry{{Number: "1", Label: "Office"}},
		Signatories: []models.Signatory{{Role: "Approved by", Name: "A"}},
	}
	if err := repo.SaveOrganization(ctx, org); err != nil {
		t.Fatal(err)
	}
	org.Name = "IDC Pune"
	if err := repo.SaveOrganization(ctx, org); err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetOrganization(ctx)
	if err != nil || got == nil {
		t.Fatalf("get = %v, %v", got, err)
	}
	if got.Name != "IDC Pune" || !got.EMDAmount.Equal(org.EMDAmount.Decimal) || len(got.Signatories) != 1 {
		t.Errorf("round trip = %+v", got)
	}
}
