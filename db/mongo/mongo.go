package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDB struct {
	Client *mongo.Client
	URL    string
	Name   string
}

func NewMongoDB(url, name string) *MongoDB {
	return &MongoDB{URL: url, Name: name}
}

func (m *MongoDB) Connect(ctx context.Context) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.URL))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return err
	}
	m.Client = client
	return nil
}

// Database returns the application database.
func (m *MongoDB) Database() *mongo.Database {
	return m.Client.Database(m.Name)
}

func (m *MongoDB) Disconnect(ctx context.Context) error {
	if m.Client == nil {
		return nil
	}
	return m.Client.Disconnect(ctx)
}
