package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"connectly/models"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	FEED_CACHE_TTL  = 60 * time.Second // TTL для кеша страниц ленты
	FEED_KEY_PREFIX = "feed_page:"     // Префикс ключей страниц ленты в Redis
)

var (
	feedCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feed_cache_hits_total",
		Help: "Total number of feed page cache hits",
	})
	feedCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feed_cache_misses_total",
		Help: "Total number of feed page cache misses",
	})
)

// PageCache - кеш готовых страниц ленты. Записи неизменяемы:
// повторный Set полностью перезаписывает значение, инвалидации по записи
// нет - устаревание ограничено только TTL.
type PageCache interface {
	Get(ctx context.Context, key string) (*models.FeedPage, bool)
	Set(ctx context.Context, key string, page *models.FeedPage, ttl time.Duration)
}

// FeedCacheKey строит ключ кеша из (зритель, фильтр, страница, размер).
// MD5 здесь не несет криптографической нагрузки, нужна только стабильность
// и низкая вероятность коллизий.
func FeedCacheKey(viewer Viewer, filter string, page, size int) string {
	viewerPart := "anon"
	if !viewer.Anonymous() {
		viewerPart = fmt.Sprintf("%d", viewer.ID)
	}
	raw := fmt.Sprintf("%s:%s:%d:%d", viewerPart, NormalizeFilter(filter), page, size)
	sum := md5.Sum([]byte(raw))
	return FEED_KEY_PREFIX + hex.EncodeToString(sum[:])
}

// NormalizeFilter приводит фильтр к каноничному виду (trim + lower)
func NormalizeFilter(filter string) string {
	return strings.ToLower(strings.TrimSpace(filter))
}

// RedisPageCache - реализация PageCache поверх Redis.
// Ошибка чтения равносильна промаху, ошибка записи только логируется:
// кеш не должен ронять запрос.
type RedisPageCache struct {
	Client *redis.Client
}

func (c *RedisPageCache) Get(ctx context.Context, key string) (*models.FeedPage, bool) {
	val, err := c.Client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("WARN: feed cache read failed for key=%s: %v", key, err)
		return nil, false
	}

	var page models.FeedPage
	if err := json.Unmarshal(val, &page); err != nil {
		log.Printf("WARN: feed cache entry corrupted for key=%s: %v", key, err)
		return nil, false
	}
	return &page, true
}

func (c *RedisPageCache) Set(ctx context.Context, key string, page *models.FeedPage, ttl time.Duration) {
	data, err := json.Marshal(page)
	if err != nil {
		log.Printf("WARN: failed to marshal feed page for caching: %v", err)
		return
	}
	if err := c.Client.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Printf("WARN: feed cache write failed for key=%s: %v", key, err)
	}
}
