package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"connectly/db"
	"connectly/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

// setupTestDB подключает свежую in-memory базу для теста
func setupTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, db.ConnectTestDB())
}

func createTestUser(t *testing.T) *models.User {
	t.Helper()
	user := &models.User{
		Username:  fmt.Sprintf("%s_%d", gofakeit.Username(), time.Now().UnixNano()),
		Email:     fmt.Sprintf("%d_%s", time.Now().UnixNano(), gofakeit.Email()),
		Password:  "test",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, db.ORM.Create(user).Error)
	return user
}

// createTestPost создает пост напрямую, минуя фабрику, с управляемым created_at
func createTestPost(t *testing.T, authorID int64, title, privacy string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		AuthorID:  authorID,
		Title:     title,
		Content:   gofakeit.Sentence(5),
		PostType:  models.PostTypeBlog,
		Privacy:   privacy,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, db.ORM.Create(post).Error)
	return post
}

func createTestFollow(t *testing.T, followerID, followedID int64) {
	t.Helper()
	require.NoError(t, db.ORM.Create(&models.Follow{
		FollowerID: followerID,
		FollowedID: followedID,
		CreatedAt:  time.Now(),
	}).Error)
}

func createTestLike(t *testing.T, userID, postID int64) {
	t.Helper()
	require.NoError(t, db.ORM.Create(&models.PostLike{
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now(),
	}).Error)
}

func feedTitles(page *models.FeedPage) []string {
	titles := make([]string, 0, len(page.Posts))
	for _, p := range page.Posts {
		titles = append(titles, p.Title)
	}
	return titles
}

// memoryPageCache - фейковый кеш для тестов. Хранит сериализованные
// копии страниц, как это делает Redis, TTL игнорирует.
type memoryPageCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	sets    int
}

func newMemoryPageCache() *memoryPageCache {
	return &memoryPageCache{entries: make(map[string][]byte)}
}

func (m *memoryPageCache) Get(_ context.Context, key string) (*models.FeedPage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	var page models.FeedPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, false
	}
	return &page, true
}

func (m *memoryPageCache) Set(_ context.Context, key string, page *models.FeedPage, _ time.Duration) {
	data, err := json.Marshal(page)
	if err != nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = data
	m.sets++
}
