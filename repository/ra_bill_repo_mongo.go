package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pmis/billing"
	"pmis/models"
)

type MongoRABillRepo struct {
	DB *mongo.Database
}

func NewMongoRABillRepo(db *mongo.Database) *MongoRABillRepo {
	return &MongoRABillRepo{DB: db}
}

func (r *MongoRABillRepo) coll() *mongo.Collection {
	return r.DB.Collection("ra_bill")
}

func (r *MongoRABillRepo) Create(ctx context.Context, bill *models.RABill) error {
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = time.Now().UTC()
	}
	if bill.Status == "" {
		bill.Status = models.RABillStatusGenerated
	}
	_, err := r.coll().InsertOne(ctx, bill)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("bill %s: %w", bill.BillNo, billing.ErrDuplicateBill)
	}
	return err
}

func (r *MongoRABillRepo) GetByBillNo(ctx context.Context, billNo string) (*models.RABill, error) {
	var bill models.RABill
	err := r.coll().FindOne(ctx, bson.M{"_id": billNo}).Decode(&bill)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &bill, nil
}

func (r *MongoRABillRepo) List(ctx context.Context, filter models.RABillFilter) ([]*models.RABill, error) {
	q := bson.M{}
	if filter.ProjectRef != "" {
		q["snapshot.project.ref"] = filter.ProjectRef
	}
	if filter.CounterpartyRef != "" {
		q["snapshot.counterparty.ref"] = filter.CounterpartyRef
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(listLimit(filter)))
	cur, err := r.coll().Find(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	bills := []*models.RABill{}
	if err := cur.All(ctx, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *MongoRABillRepo) SetDocument(ctx context.Context, billNo, url string, at time.Time) error {
	res, err := r.coll().UpdateOne(ctx,
		bson.M{"_id": billNo},
		bson.M{"$set": bson.M{"document_url": url, "document_created_at": at}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
