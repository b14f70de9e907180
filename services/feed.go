package services

import (
	"context"
	"fmt"
	"time"

	"connectly/config"
	"connectly/db"
	"connectly/models"
)

// Режимы фильтрации ленты
const (
	FilterLiked    = "liked"
	FilterFollowed = "followed"
	FilterPrivate  = "private"
	FilterPublic   = "public"
)

const MAX_FEED_CANDIDATES = 1000 // Максимальное число кандидатов до пагинации

type FeedService struct {
	// Cache можно подменить в тестах. Если nil, используется Redis,
	// а при недоступном Redis лента считается без кеша.
	Cache PageCache
}

func NewFeedService() *FeedService {
	return &FeedService{}
}

func (fs *FeedService) pageCache() PageCache {
	if fs.Cache != nil {
		return fs.Cache
	}
	if RedisClient != nil {
		return &RedisPageCache{Client: RedisClient}
	}
	return nil
}

func (fs *FeedService) cacheTTL() int {
	if config.AppConfig != nil && config.AppConfig.Feed.CacheTTLSeconds > 0 {
		return config.AppConfig.Feed.CacheTTLSeconds
	}
	return int(FEED_CACHE_TTL.Seconds())
}

func (fs *FeedService) maxCandidates() int {
	if config.AppConfig != nil && config.AppConfig.Feed.MaxCandidates > 0 {
		return config.AppConfig.Feed.MaxCandidates
	}
	return MAX_FEED_CANDIDATES
}

func secondsToDuration(s int) time.Duration {
	return time.Duration(s) * time.Second
}

// GetFeed возвращает страницу ленты для зрителя: кеш -> выборка ->
// пагинация -> обогащение -> кеш. Конкурентные промахи по одному ключу
// допускают повторное вычисление - выборка идемпотентна и без побочных
// эффектов, дедупликация не нужна.
func (fs *FeedService) GetFeed(ctx context.Context, viewer Viewer, filter string, page, size int) (*models.FeedPage, error) {
	filter = NormalizeFilter(filter)
	page = NormalizePage(page)
	size = NormalizePageSize(size)

	key := FeedCacheKey(viewer, filter, page, size)
	cache := fs.pageCache()
	if cache != nil {
		if cached, ok := cache.Get(ctx, key); ok {
			feedCacheHits.Inc()
			return cached, nil
		}
		feedCacheMisses.Inc()
	}

	candidates, err := fs.SelectCandidates(ctx, viewer, filter)
	if err != nil {
		return nil, err
	}

	items, meta := Paginate(candidates, page, size)

	summaries, err := fs.buildSummaries(ctx, items)
	if err != nil {
		return nil, err
	}

	feedPage := &models.FeedPage{Posts: summaries, Meta: meta}
	if cache != nil {
		cache.Set(ctx, key, feedPage, secondsToDuration(fs.cacheTTL()))
	}
	return feedPage, nil
}

// SelectCandidates строит упорядоченный набор кандидатов по режиму фильтра
// (created_at DESC, id DESC для детерминизма). Нераспознанный фильтр
// мягко деградирует к дефолтной ветке: фильтр - это UX-параметр,
// а не граница безопасности. Границу держит IsVisible.
func (fs *FeedService) SelectCandidates(ctx context.Context, viewer Viewer, filter string) ([]models.FeedPost, error) {
	mode := NormalizeFilter(filter)

	// Анонимный зритель не имеет лайков и приватных постов, поэтому
	// зависящие от идентичности режимы даже не доходят до хранилища -
	// они схлопываются в публичную ветку.
	if viewer.Anonymous() && mode != FilterFollowed {
		mode = FilterPublic
	}

	q := db.GetReadOnlyDB(ctx).
		Table("posts p").
		Select("p.id, p.author_id, u.username AS author_name, p.title, p.privacy, p.created_at").
		Joins("JOIN users u ON u.id = p.author_id")

	switch mode {
	case FilterLiked:
		q = q.Joins("JOIN post_likes pl ON pl.post_id = p.id").
			Where("pl.user_id = ?", viewer.ID)
	case FilterFollowed:
		// Режим followed жестко ограничен публичными постами:
		// приватный пост не попадает сюда даже при подписке на автора.
		q = q.Where("p.privacy = ?", models.PrivacyPublic).
			Where("p.author_id IN (SELECT followed_id FROM follows WHERE follower_id = ?)", viewer.ID)
	case FilterPrivate:
		q = q.Where("p.author_id = ? AND p.privacy = ?", viewer.ID, models.PrivacyPrivate)
	case FilterPublic:
		q = q.Where("p.privacy = ?", models.PrivacyPublic)
	default:
		// Дефолт и нераспознанные фильтры: все посты, дальше видимость
	}

	var rows []models.FeedPost
	err := q.Order("p.created_at DESC, p.id DESC").
		Limit(fs.maxCandidates()).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to select feed candidates: %w", err)
	}

	// followed уже ограничен публичными постами запросом выше,
	// для остальных режимов финальный проход через политику видимости.
	// Двойной барьер намеренный: изменение одного слоя само по себе
	// не может раскрыть приватный контент.
	if mode == FilterFollowed {
		return rows, nil
	}

	visible := make([]models.FeedPost, 0, len(rows))
	for _, row := range rows {
		if visibleTo(row.AuthorID, row.Privacy, viewer) {
			visible = append(visible, row)
		}
	}
	return visible, nil
}

// buildSummaries обогащает страницу кандидатов счетчиками комментариев
// и лайков. Счетчики считаются только для постов страницы, не для всего
// набора кандидатов.
func (fs *FeedService) buildSummaries(ctx context.Context, items []models.FeedPost) ([]models.PostSummary, error) {
	summaries := make([]models.PostSummary, 0, len(items))
	if len(items) == 0 {
		return summaries, nil
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	type countRow struct {
		PostID int64
		Cnt    int64
	}
	var commentCounts []countRow
	err := db.GetReadOnlyDB(ctx).
		Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS cnt").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&commentCounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	type likerRow struct {
		PostID   int64
		Username string
	}
	var likerRows []likerRow
	err = db.GetReadOnlyDB(ctx).
		Table("post_likes pl").
		Select("pl.post_id, u.username").
		Joins("JOIN users u ON u.id = pl.user_id").
		Where("pl.post_id IN ?", ids).
		Order("pl.id").
		Scan(&likerRows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load likers: %w", err)
	}

	comments := make(map[int64]int64, len(commentCounts))
	for _, row := range commentCounts {
		comments[row.PostID] = row.Cnt
	}
	likers := make(map[int64][]string, len(likerRows))
	for _, row := range likerRows {
		likers[row.PostID] = append(likers[row.PostID], row.Username)
	}

	for _, item := range items {
		likes := likers[item.ID]
		if likes == nil {
			likes = []string{}
		}
		summaries = append(summaries, models.PostSummary{
			ID:           item.ID,
			Title:        item.Title,
			AuthorName:   item.AuthorName,
			Privacy:      item.Privacy,
			CreatedAt:    item.CreatedAt,
			CommentCount: comments[item.ID],
			LikeCount:    int64(len(likes)),
			Likes:        likes,
		})
	}
	return summaries, nil
}
