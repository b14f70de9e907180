package services

import (
	"fmt"
	"testing"
	"time"

	"connectly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeCandidates(n int) []models.FeedPost {
	posts := make([]models.FeedPost, 0, n)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		posts = append(posts, models.FeedPost{
			ID:        int64(n - i),
			Title:     fmt.Sprintf("post %d", n-i),
			CreatedAt: base.Add(-time.Duration(i) * time.Minute),
		})
	}
	return posts
}

func TestNormalizePageSize(t *testing.T) {
	assert.Equal(t, DefaultPageSize, NormalizePageSize(0))
	assert.Equal(t, DefaultPageSize, NormalizePageSize(-5))
	assert.Equal(t, 1, NormalizePageSize(1))
	assert.Equal(t, MaxPageSize, NormalizePageSize(100))
	assert.Equal(t, MaxPageSize, NormalizePageSize(500))
}

func TestNormalizePage(t *testing.T) {
	assert.Equal(t, 1, NormalizePage(0))
	assert.Equal(t, 1, NormalizePage(-1))
	assert.Equal(t, 7, NormalizePage(7))
}

func TestPaginateBasic(t *testing.T) {
	posts := makeCandidates(25)

	items, meta := Paginate(posts, 1, 10)
	require.Len(t, items, 10)
	assert.Equal(t, int64(25), items[0].ID)
	assert.True(t, meta.HasNext)
	assert.False(t, meta.HasPrev)
	assert.Equal(t, 2, meta.NextPage)

	items, meta = Paginate(posts, 3, 10)
	require.Len(t, items, 5)
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
	assert.Equal(t, 0, meta.NextPage)
}

func TestPaginateBeyondRange(t *testing.T) {
	posts := makeCandidates(3)

	items, meta := Paginate(posts, 10, 10)
	assert.Empty(t, items)
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
}

func TestPaginateDeterministic(t *testing.T) {
	posts := makeCandidates(30)

	items1, meta1 := Paginate(posts, 2, 10)
	items2, meta2 := Paginate(posts, 2, 10)

	assert.Equal(t, items1, items2)
	assert.Equal(t, meta1, meta2)
}

// Сценарий из двух постов при page_size=1: первая страница - более новый
// пост с has_next, вторая - более старый без has_next, третья - пустая
func TestPaginateTwoPostsWalk(t *testing.T) {
	posts := makeCandidates(2)

	items, meta := Paginate(posts, 1, 1)
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ID)
	assert.True(t, meta.HasNext)

	items, meta = Paginate(posts, 2, 1)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ID)
	assert.False(t, meta.HasNext)

	items, meta = Paginate(posts, 3, 1)
	assert.Empty(t, items)
	assert.False(t, meta.HasNext)
}
