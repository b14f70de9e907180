package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"connectly/db"
	"connectly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectCandidatesDefaultAndPublic(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	fs := NewFeedService()

	alice := createTestUser(t)
	bob := createTestUser(t)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	createTestPost(t, alice.ID, "alice public", models.PrivacyPublic, base)
	createTestPost(t, alice.ID, "alice private", models.PrivacyPrivate, base.Add(time.Minute))
	createTestPost(t, bob.ID, "bob public", models.PrivacyPublic, base.Add(2*time.Minute))

	// Владелец видит свой приватный пост в дефолтной ленте
	rows, err := fs.SelectCandidates(ctx, Viewer{ID: alice.ID}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob public", "alice private", "alice public"}, candidateTitles(rows))

	// Чужой приватный пост в дефолтной ленте не виден
	rows, err = fs.SelectCandidates(ctx, Viewer{ID: bob.ID}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob public", "alice public"}, candidateTitles(rows))

	// Аноним в дефолтном режиме получает ровно публичный срез
	rows, err = fs.SelectCandidates(ctx, AnonymousViewer, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob public", "alice public"}, candidateTitles(rows))

	// Явный public режим
	rows, err = fs.SelectCandidates(ctx, Viewer{ID: alice.ID}, "PUBLIC ")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob public", "alice public"}, candidateTitles(rows))
}

func TestSelectCandidatesLiked(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	fs := NewFeedService()

	alice := createTestUser(t)
	bob := createTestUser(t)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	liked := createTestPost(t, alice.ID, "liked post", models.PrivacyPublic, base)
	createTestPost(t, alice.ID, "not liked", models.PrivacyPublic, base.Add(time.Minute))
	createTestLike(t, bob.ID, liked.ID)

	rows, err := fs.SelectCandidates(ctx, Viewer{ID: bob.ID}, "liked")
	require.NoError(t, err)
	assert.Equal(t, []string{"liked post"}, candidateTitles(rows))

	// У анонима нет лайков: режим схлопывается в публичную ветку,
	// приватный контент не утекает
	rows, err = fs.SelectCandidates(ctx, AnonymousViewer, "liked")
	require.NoError(t, err)
	for _, row := range rows {
		assert.Equal(t, models.PrivacyPublic, row.Privacy)
	}
}

func TestSelectCandidatesFollowedExcludesPrivate(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	fs := NewFeedService()

	alice := createTestUser(t)
	bob := createTestUser(t)
	carol := createTestUser(t)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	createTestPost(t, alice.ID, "alice public", models.PrivacyPublic, base)
	createTestPost(t, alice.ID, "alice private", models.PrivacyPrivate, base.Add(time.Minute))
	createTestPost(t, carol.ID, "carol public", models.PrivacyPublic, base.Add(2*time.Minute))

	createTestFollow(t, bob.ID, alice.ID)

	// Приватный пост не попадает в followed даже при подписке на автора
	rows, err := fs.SelectCandidates(ctx, Viewer{ID: bob.ID}, "followed")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice public"}, candidateTitles(rows))

	// Аноним не подписан ни на кого
	rows, err = fs.SelectCandidates(ctx, AnonymousViewer, "followed")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSelectCandidatesPrivateMode(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	fs := NewFeedService()

	alice := createTestUser(t)
	bob := createTestUser(t)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	createTestPost(t, alice.ID, "alice public", models.PrivacyPublic, base)
	createTestPost(t, alice.ID, "alice secret", models.PrivacyPrivate, base.Add(time.Minute))
	createTestPost(t, bob.ID, "bob secret", models.PrivacyPrivate, base.Add(2*time.Minute))

	rows, err := fs.SelectCandidates(ctx, Viewer{ID: alice.ID}, "private")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice secret"}, candidateTitles(rows))

	// Аноним в режиме private получает публичный срез, не чьи-то секреты
	rows, err = fs.SelectCandidates(ctx, AnonymousViewer, "private")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice public"}, candidateTitles(rows))
}

func TestSelectCandidatesUnknownFilterFallsBack(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	fs := NewFeedService()

	alice := createTestUser(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	createTestPost(t, alice.ID, "alice public", models.PrivacyPublic, base)
	createTestPost(t, alice.ID, "alice private", models.PrivacyPrivate, base.Add(time.Minute))

	// Нераспознанный фильтр - мягкий фолбэк на дефолтную ветку
	rows, err := fs.SelectCandidates(ctx, Viewer{ID: alice.ID}, "trending")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice private", "alice public"}, candidateTitles(rows))
}

func TestGetFeedCacheIdempotence(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	cache := newMemoryPageCache()
	fs := &FeedService{Cache: cache}

	alice := createTestUser(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	createTestPost(t, alice.ID, "first", models.PrivacyPublic, base)
	createTestPost(t, alice.ID, "second", models.PrivacyPublic, base.Add(time.Minute))

	page1, err := fs.GetFeed(ctx, AnonymousViewer, "", 1, 10)
	require.NoError(t, err)
	require.Equal(t, []string{"second", "first"}, feedTitles(page1))
	require.Equal(t, 1, cache.sets)

	// Сносим все посты: если второй запрос пойдет в хранилище,
	// результат изменится и тест упадет
	require.NoError(t, db.ORM.Where("1 = 1").Delete(&models.Post{}).Error)

	page2, err := fs.GetFeed(ctx, AnonymousViewer, "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	raw1, err := json.Marshal(page1)
	require.NoError(t, err)
	raw2, err := json.Marshal(page2)
	require.NoError(t, err)
	assert.Equal(t, raw1, raw2)
}

func TestGetFeedPrivateRoundTrip(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	fs := &FeedService{Cache: newMemoryPageCache()}

	alice := createTestUser(t)
	bob := createTestUser(t)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	createTestPost(t, alice.ID, "my secret", models.PrivacyPrivate, base)

	ownFeed, err := fs.GetFeed(ctx, Viewer{ID: alice.ID}, "", 1, 10)
	require.NoError(t, err)
	assert.Contains(t, feedTitles(ownFeed), "my secret")

	ownPrivate, err := fs.GetFeed(ctx, Viewer{ID: alice.ID}, "private", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"my secret"}, feedTitles(ownPrivate))

	anonFeed, err := fs.GetFeed(ctx, AnonymousViewer, "", 1, 10)
	require.NoError(t, err)
	assert.NotContains(t, feedTitles(anonFeed), "my secret")

	bobFeed, err := fs.GetFeed(ctx, Viewer{ID: bob.ID}, "", 1, 10)
	require.NoError(t, err)
	assert.NotContains(t, feedTitles(bobFeed), "my secret")
}

func TestGetFeedSummaries(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	fs := NewFeedService()

	alice := createTestUser(t)
	bob := createTestUser(t)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	post := createTestPost(t, alice.ID, "popular", models.PrivacyPublic, base)
	createTestLike(t, bob.ID, post.ID)
	require.NoError(t, db.ORM.Create(&models.Comment{
		PostID: post.ID, AuthorID: bob.ID, Text: "nice", CreatedAt: base, UpdatedAt: base,
	}).Error)

	page, err := fs.GetFeed(ctx, AnonymousViewer, "", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)

	summary := page.Posts[0]
	assert.Equal(t, "popular", summary.Title)
	assert.Equal(t, alice.Username, summary.AuthorName)
	assert.Equal(t, int64(1), summary.CommentCount)
	assert.Equal(t, int64(1), summary.LikeCount)
	assert.Equal(t, []string{bob.Username}, summary.Likes)
}

func TestFeedCacheKey(t *testing.T) {
	key1 := FeedCacheKey(Viewer{ID: 1}, "liked", 1, 10)
	key2 := FeedCacheKey(Viewer{ID: 1}, " LIKED ", 1, 10)
	key3 := FeedCacheKey(Viewer{ID: 2}, "liked", 1, 10)
	key4 := FeedCacheKey(AnonymousViewer, "liked", 1, 10)
	key5 := FeedCacheKey(Viewer{ID: 1}, "liked", 2, 10)

	// Нормализация фильтра не меняет ключ, остальные параметры меняют
	assert.Equal(t, key1, key2)
	assert.NotEqual(t, key1, key3)
	assert.NotEqual(t, key1, key4)
	assert.NotEqual(t, key1, key5)
}

func candidateTitles(rows []models.FeedPost) []string {
	titles := make([]string, 0, len(rows))
	for _, row := range rows {
		titles = append(titles, row.Title)
	}
	return titles
}
