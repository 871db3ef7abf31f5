package mocks

import (
	"context"
	"errors"

	"hotel/shared/cache"
)

var errMiss = errors.New("cache miss")

type noopCache struct {
}

// Save implements cache.RedisCache.
func (c *noopCache) Save(_ context.Context, _ string, _ any, _ int) error {
	return nil
}

// Get implements cache.RedisCache. Every lookup misses.
func (c *noopCache) Get(_ context.Context, _ string, _ any) error {
	return errMiss
}

// Delete implements cache.RedisCache.
func (c *noopCache) Delete(_ context.Context, _ string) error {
	return nil
}

// Clear implements cache.RedisCache.
func (c *noopCache) Clear(_ context.Context, _ string) error {
	return nil
}

func NewCache() cache.RedisCache {
	return &noopCache{}
}
