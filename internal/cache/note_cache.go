package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	dom "github.com/bscheucher/keeper-server/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyList   = "note:list:"
	keySearch = "note:search:"
)

// NoteCache caches per-owner note lists and search results in Redis.
// Keys are namespaced by owner ID so invalidation never crosses users.
type NoteCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewNoteCache returns a new NoteCache.
func NewNoteCache(rdb *redis.Client, ttl time.Duration) *NoteCache {
	return &NoteCache{rdb: rdb, ttl: ttl}
}

// GetList returns the owner's cached list or nil if miss.
func (c *NoteCache) GetList(ctx context.Context, ownerID int64) ([]dom.Note, error) {
	b, err := c.rdb.Get(ctx, listKey(ownerID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Note
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores the owner's list in cache. A nil list is stored as an empty
// one so an owner with zero notes still gets cache hits.
func (c *NoteCache) SetList(ctx context.Context, ownerID int64, list []dom.Note) error {
	if list == nil {
		list = []dom.Note{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, listKey(ownerID), b, c.ttl).Err()
}

// GetSearch returns the owner's cached search result for query q, or nil if miss.
func (c *NoteCache) GetSearch(ctx context.Context, ownerID int64, q string) ([]dom.Note, error) {
	b, err := c.rdb.Get(ctx, searchKey(ownerID, q)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Note
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetSearch stores the owner's search result in cache. Empty results are
// stored as an empty list, not null, so they still count as hits.
func (c *NoteCache) SetSearch(ctx context.Context, ownerID int64, q string, list []dom.Note) error {
	if list == nil {
		list = []dom.Note{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, searchKey(ownerID, q), b, c.ttl).Err()
}

// Invalidate removes the owner's list key and all of the owner's search keys
// (cache invalidation on write).
func (c *NoteCache) Invalidate(ctx context.Context, ownerID int64) error {
	if err := c.rdb.Del(ctx, listKey(ownerID)).Err(); err != nil {
		return err
	}
	prefix := keySearch + strconv.FormatInt(ownerID, 10) + ":"
	iter := c.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func listKey(ownerID int64) string {
	return keyList + strconv.FormatInt(ownerID, 10)
}

func searchKey(ownerID int64, q string) string {
	return keySearch + strconv.FormatInt(ownerID, 10) + ":" + normalizeQuery(q)
}

func normalizeQuery(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
