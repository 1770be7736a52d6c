package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

type RedisDB struct {
	Client   *goredis.Client
	Addr     string
	Password string
	DB       int
}

func NewRedisDB(addr, password string, db int) *RedisDB {
	return &RedisDB{Addr: addr, Password: password, DB: db}
}

func (r *RedisDB) Connect(ctx context.Context) error {
	r.Client = goredis.NewClient(&goredis.Options{
		Addr:     r.Addr,
		Password: r.Password,
		DB:       r.DB,
	})
	if err := r.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (r *RedisDB) Disconnect(context.Context) error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}
