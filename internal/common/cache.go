package common

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache holds rendered public blog pages. Any write to a post flushes it.
type Cache struct {
	items *cache.Cache
}

func NewCache(ttl, cleanupInterval time.Duration) *Cache {
	return &Cache{items: cache.New(ttl, cleanupInterval)}
}

// Set stores value under key for the default ttl, or for ttl when given.
func (c *Cache) Set(key string, value any, ttl ...time.Duration) {
	d := cache.DefaultExpiration
	if len(ttl) > 0 {
		d = ttl[0]
	}
	c.items.Set(key, value, d)
}

func (c *Cache) Get(key string) (any, bool) {
	return c.items.Get(key)
}

func (c *Cache) Flush() {
	c.items.Flush()
}

func (c *Cache) Len() int {
	return c.items.ItemCount()
}

// Cached returns the value under key when it is present and of type T.
func Cached[T any](c *Cache, key string) (T, bool) {
	var zero T

	v, ok := c.items.Get(key)
	if !ok {
		return zero, false
	}

	t, ok := v.(T)
	if !ok {
		return zero, false
	}

	return t, true
}

func CacheKeyBlogBySlug(slug string) string {
	return "blog_by_slug:" + slug
}

func CacheKeyBlogs(tag string, p Pagination) string {
	return fmt.Sprintf("blogs:%s:%d:%d", tag, p.Page, p.Limit)
}

func CacheKeyRelated(slug string, limit int) string {
	return fmt.Sprintf("related:%s:%d", slug, limit)
}

func CacheKeyTags() string {
	return "tags"
}
