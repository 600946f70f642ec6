package servicerequest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	domainsr "github.com/alanyang/roadside-relay/internal/domain/servicerequest"
)

// Repository implements port/servicerequest.Repository on Redis. Each record
// is a JSON string; sorted sets keyed by creation time index all records and
// each user's records.
type Repository struct {
	rdb    goredis.UniversalClient
	prefix string
}

func New(rdb goredis.UniversalClient, prefix string) *Repository {
	if prefix == "" {
		prefix = "roadside"
	}
	return &Repository{rdb: rdb, prefix: prefix}
}

func (r *Repository) recordKey(id string) string   { return r.prefix + ":sr:" + id }
func (r *Repository) allKey() string               { return r.prefix + ":sr:index" }
func (r *Repository) userKey(userID string) string { return r.prefix + ":sr:user:" + userID }

func (r *Repository) Create(ctx context.Context, sr domainsr.ServiceRequest) (domainsr.ServiceRequest, error) {
	raw, err := json.Marshal(sr)
	if err != nil {
		return domainsr.ServiceRequest{}, fmt.Errorf("encoding service request: %w", err)
	}

	ok, err := r.rdb.SetNX(ctx, r.recordKey(sr.ID), raw, 0).Result()
	if err != nil {
		return domainsr.ServiceRequest{}, fmt.Errorf("inserting service request: %w", err)
	}
	if !ok {
		return domainsr.ServiceRequest{}, fmt.Errorf("inserting service request %s: %w", sr.ID, domainsr.ErrDuplicateID)
	}

	score := float64(sr.CreatedAt.UnixNano())
	_, err = r.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.ZAdd(ctx, r.allKey(), goredis.Z{Score: score, Member: sr.ID})
		p.ZAdd(ctx, r.userKey(sr.UserID), goredis.Z{Score: score, Member: sr.ID})
		return nil
	})
	if err != nil {
		// The record exists but is not indexed; drop it so the id can be retried.
		r.rdb.Del(context.WithoutCancel(ctx), r.recordKey(sr.ID)) //nolint:errcheck
		return domainsr.ServiceRequest{}, fmt.Errorf("indexing service request: %w", err)
	}
	return sr, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (domainsr.ServiceRequest, error) {
	raw, err := r.rdb.Get(ctx, r.recordKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return domainsr.ServiceRequest{}, fmt.Errorf("service request %s: %w", id, domainsr.ErrNotFound)
		}
		return domainsr.ServiceRequest{}, fmt.Errorf("querying service request: %w", err)
	}
	var sr domainsr.ServiceRequest
	if err := json.Unmarshal(raw, &sr); err != nil {
		return domainsr.ServiceRequest{}, fmt.Errorf("decoding service request %s: %w", id, err)
	}
	return sr, nil
}

// List returns matching requests newest first.
func (r *Repository) List(ctx context.Context, filters domainsr.ListFilters) ([]domainsr.ServiceRequest, error) {
	index := r.allKey()
	if filters.UserID != nil {
		index = r.userKey(*filters.UserID)
	}
	stop := int64(-1)
	if filters.Limit > 0 {
		stop = int64(filters.Limit) - 1
	}

	ids, err := r.rdb.ZRevRange(ctx, index, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("listing service requests: %w", err)
	}
	out := make([]domainsr.ServiceRequest, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.recordKey(id)
	}
	vals, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("loading service requests: %w", err)
	}
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue // indexed but missing; skip
		}
		var sr domainsr.ServiceRequest
		if err := json.Unmarshal([]byte(s), &sr); err != nil {
			return nil, fmt.Errorf("decoding service request %s: %w", ids[i], err)
		}
		out = append(out, sr)
	}
	return out, nil
}

// Connect dials addr and verifies the server answers.
func Connect(ctx context.Context, addr string) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}
