package common

import (
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

type Cache struct {
	*cache.Cache
}

func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{cache.New(expirationTime, cleanupTime)}
}

func (c *Cache) Set(key string, value interface{}, expiration ...time.Duration) {
	if len(expiration) > 0 {
		c.Cache.Set(key, value, expiration[0])
		return
	}
	c.Cache.Set(key, value, cache.DefaultExpiration)
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.Cache.Get(key)
}

func (c *Cache) Flush() {
	c.Cache.Flush()
}

func CacheKeyPost(id string) string {
	return "post:" + id
}

func CacheKeyPostBySlug(slug string) string {
	return "post_by_slug:" + slug
}

func CacheKeyPosts(category string) string {
	return "posts:" + category
}

func CacheKeyLatestPosts(limit int) string {
	return "latest_posts:" + strconv.Itoa(limit)
}
