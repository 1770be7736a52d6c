package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"pmis/models"
)

// RedisDraftStore keeps drafts as JSON under <prefix>:draft:<id> with a TTL
// refreshed on every save.
type RedisDraftStore struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisDraftStore(client *goredis.Client, prefix string, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisDraftStore) key(id string) string {
	if s.prefix == "" {
		return "draft:" + id
	}
	return s.prefix + ":draft:" + id
}

func (s *RedisDraftStore) Get(ctx context.Context, id string) (*models.Draft, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis get draft %s: %w", id, err)
	}
	var d models.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode draft %s: %w", id, err)
	}
	return &d, nil
}

func (s *RedisDraftStore) Save(ctx context.Context, d *models.Draft) error {
	d.UpdatedAt = time.Now().UTC()
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft %s: %w", d.ID, err)
	}
	if err := s.client.Set(ctx, s.key(d.ID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set draft %s: %w", d.ID, err)
	}
	return nil
}

func (s *RedisDraftStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("redis del draft %s: %w", id, err)
	}
	return nil
}
