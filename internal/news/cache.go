package news

import (
	"container/list"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"newsdesk/internal/models"
)

const headlineCacheMaxEntries = 64

type headlineCache struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	order      *list.List
	maxEntries int
}

type headlineCacheEntry struct {
	key       string
	articles  []models.Article
	expiresAt time.Time
}

func newHeadlineCache(maxEntries int) *headlineCache {
	if maxEntries <= 0 {
		return nil
	}

	return &headlineCache{
		entries:    make(map[string]*list.Element, maxEntries),
		order:      list.New(),
		maxEntries: maxEntries,
	}
}

func (c *headlineCache) get(key string, now time.Time) ([]models.Article, bool) {
	if c == nil || key == "" {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	entry, ok := elem.Value.(*headlineCacheEntry)
	if !ok {
		return nil, false
	}

	if now.After(entry.expiresAt) {
		c.removeElement(elem)

		return nil, false
	}

	c.order.MoveToFront(elem)

	return entry.articles, true
}

func (c *headlineCache) set(
	key string,
	articles []models.Article,
	expiresAt time.Time,
	now time.Time,
) {
	if c == nil || key == "" || expiresAt.IsZero() {
		return
	}

	if !expiresAt.After(now) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		entry, castOk := elem.Value.(*headlineCacheEntry)
		if !castOk {
			return
		}

		entry.articles = articles
		entry.expiresAt = expiresAt
		c.order.MoveToFront(elem)

		return
	}

	elem := c.order.PushFront(&headlineCacheEntry{
		key:       key,
		articles:  articles,
		expiresAt: expiresAt,
	})
	c.entries[key] = elem

	c.evictExpiredLocked(now)
	c.enforceSizeLimitLocked()
}

func (c *headlineCache) evictExpiredLocked(now time.Time) {
	for elem := c.order.Back(); elem != nil; {
		prev := elem.Prev()
		entry, ok := elem.Value.(*headlineCacheEntry)
		if !ok {
			continue
		}

		if now.After(entry.expiresAt) {
			c.removeElement(elem)
		}
		elem = prev
	}
}

func (c *headlineCache) enforceSizeLimitLocked() {
	for len(c.entries) > c.maxEntries {
		elem := c.order.Back()
		if elem == nil {
			return
		}
		c.removeElement(elem)
	}
}

func (c *headlineCache) removeElement(elem *list.Element) {
	entry, ok := elem.Value.(*headlineCacheEntry)
	if !ok {
		return
	}

	delete(c.entries, entry.key)
	c.order.Remove(elem)
}

// CachedSource answers repeat category/page requests from a bounded TTL
// cache, falling through to the wrapped source on a miss.
type CachedSource struct {
	source Source
	cache  *headlineCache
	ttl    time.Duration
	log    *slog.Logger
}

func NewCachedSource(source Source, ttl time.Duration, log *slog.Logger) *CachedSource {
	return &CachedSource{
		source: source,
		cache:  newHeadlineCache(headlineCacheMaxEntries),
		ttl:    ttl,
		log:    log,
	}
}

func (c *CachedSource) Headlines(
	ctx context.Context,
	category string,
	page int,
) ([]models.Article, error) {
	if page < 1 {
		page = 1
	}

	key := fmt.Sprintf("%s:%d", category, page)
	now := time.Now()

	if articles, ok := c.cache.get(key, now); ok {
		return articles, nil
	}

	articles, err := c.source.Headlines(ctx, category, page)
	if err != nil {
		return nil, err
	}

	c.cache.set(key, articles, now.Add(c.ttl), now)

	return articles, nil
}
