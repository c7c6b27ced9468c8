package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	cacheSizeBytes  = 512 * 1024
	indexCacheKey   = "catalog-index"
	defaultCacheTTL = 15 * time.Minute
)

//go:generate mockgen -source=$GOFILE -destination=cache_mocks_test.go -package=catalog_test

type catalogSource interface {
	Get(ctx context.Context, exerciseName string) (*Muscles, error)
	Index(ctx context.Context) (Index, error)
}

// Cached puts a small in-process cache in front of the catalog repo. The
// catalog changes rarely but is consulted on every recompute pass.
type Cached struct {
	source catalogSource
	cache  *freecache.Cache
	ttl    time.Duration
}

func NewCached(source catalogSource) *Cached {
	return &Cached{
		source: source,
		cache:  freecache.NewCache(cacheSizeBytes),
		ttl:    defaultCacheTTL,
	}
}

func (c *Cached) Get(ctx context.Context, exerciseName string) (*Muscles, error) {
	key := []byte("ex||" + strings.ToLower(exerciseName))
	if cached, err := c.cache.Get(key); err == nil {
		var muscles Muscles
		if err := json.Unmarshal(cached, &muscles); err == nil {
			return &muscles, nil
		}
		// corrupt entry, fall through to the source
		c.cache.Del(key)
	}

	muscles, err := c.source.Get(ctx, exerciseName)
	if err != nil {
		return nil, err
	}

	musclesJson, err := json.Marshal(muscles)
	if err != nil {
		return nil, fmt.Errorf("marshal muscles: %w", err)
	}
	if err := c.cache.Set(key, musclesJson, int(c.ttl.Seconds())); err != nil {
		log.Tracef("catalog cache set [%s]: %s", exerciseName, err)
	}

	return muscles, nil
}

func (c *Cached) Index(ctx context.Context) (Index, error) {
	if cached, err := c.cache.Get([]byte(indexCacheKey)); err == nil {
		var index Index
		if err := json.Unmarshal(cached, &index); err == nil {
			return index, nil
		}
		c.cache.Del([]byte(indexCacheKey))
	}

	index, err := c.source.Index(ctx)
	if err != nil {
		return nil, err
	}

	indexJson, err := json.Marshal(index)
	if err != nil {
		return nil, fmt.Errorf("marshal catalog index: %w", err)
	}
	if err := c.cache.Set([]byte(indexCacheKey), indexJson, int(c.ttl.Seconds())); err != nil {
		log.Tracef("catalog cache set index: %s", err)
	}

	return index, nil
}
