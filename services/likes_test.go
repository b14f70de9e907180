package services

import (
	"context"
	"testing"
	"time"

	"connectly/db"
	"connectly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikePostRules(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	ls := NewLikeService()

	alice := createTestUser(t)
	bob := createTestUser(t)
	post := createTestPost(t, alice.ID, "likeable", models.PrivacyPublic, time.Now())

	// Свой пост лайкать нельзя
	_, err := ls.LikePost(ctx, alice.ID, post.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = ls.LikePost(ctx, bob.ID, post.ID)
	require.NoError(t, err)

	// Повторный лайк отклоняется
	_, err = ls.LikePost(ctx, bob.ID, post.ID)
	assert.ErrorIs(t, err, ErrValidation)

	// Чужой приватный пост неотличим от несуществующего
	secret := createTestPost(t, alice.ID, "secret", models.PrivacyPrivate, time.Now())
	_, err = ls.LikePost(ctx, bob.ID, secret.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnlikePost(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	ls := NewLikeService()

	alice := createTestUser(t)
	bob := createTestUser(t)
	post := createTestPost(t, alice.ID, "likeable", models.PrivacyPublic, time.Now())

	_, err := ls.LikePost(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	require.NoError(t, ls.UnlikePost(ctx, bob.ID, post.ID))

	// Лайка больше нет
	assert.ErrorIs(t, ls.UnlikePost(ctx, bob.ID, post.ID), ErrNotFound)
}

func TestLikeCommentRules(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	ls := NewLikeService()

	alice := createTestUser(t)
	bob := createTestUser(t)
	post := createTestPost(t, alice.ID, "post", models.PrivacyPublic, time.Now())

	comment := &models.Comment{PostID: post.ID, AuthorID: bob.ID, Text: "hi", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, db.ORM.Create(comment).Error)

	// Свой комментарий лайкать нельзя
	_, err := ls.LikeComment(ctx, bob.ID, comment.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = ls.LikeComment(ctx, alice.ID, comment.ID)
	require.NoError(t, err)

	_, err = ls.LikeComment(ctx, alice.ID, comment.ID)
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, ls.UnlikeComment(ctx, alice.ID, comment.ID))
	assert.ErrorIs(t, ls.UnlikeComment(ctx, alice.ID, comment.ID), ErrNotFound)
}
