package db

import "context"

type DBType string

const (
	Postgres DBType = "postgres"
	Mongo    DBType = "mongo"
)

// DB is a connection the server opens at start and closes on shutdown. The
// context only bounds the dial or close itself.
type DB interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
}
