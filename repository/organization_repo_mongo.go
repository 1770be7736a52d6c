package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pmis/models"
)

// organizationDocID is the _id of the single organization document.
const organizationDocID int64 = 1

type MongoOrganizationRepo struct {
	DB *mongo.Database
}

func NewMongoOrganizationRepo(db *mongo.Database) *MongoOrganizationRepo {
	return &MongoOrganizationRepo{DB: db}
}

func (r *MongoOrganizationRepo) SaveOrganization(ctx context.Context, org *models.Organization) error {
	if org.CreatedAt.IsZero() {
		org.CreatedAt = time.Now().UTC()
	}
	org.ID = organizationDocID

	_, err := r.DB.Collection("organization").ReplaceOne(ctx,
		bson.M{"_id": organizationDocID},
		org,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *MongoOrganizationRepo) GetOrganization(ctx context.Context) (*models.Organization, error) {
	var org models.Organization
	err := r.DB.Collection("organization").FindOne(ctx, bson.M{"_id": organizationDocID}).Decode(&org)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}
