package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"connectly/db"
	"connectly/models"

	"gorm.io/gorm"
)

type LikeService struct{}

func NewLikeService() *LikeService {
	return &LikeService{}
}

// LikePost ставит лайк посту. Свой пост лайкать нельзя,
// повторный лайк отклоняется.
func (ls *LikeService) LikePost(ctx context.Context, userID, postID int64) (*models.PostLike, error) {
	var post models.Post
	err := db.GetReadOnlyDB(ctx).First(&post, postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: post %d", ErrNotFound, postID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if !IsVisible(&post, Viewer{ID: userID}) {
		return nil, fmt.Errorf("%w: post %d", ErrNotFound, postID)
	}
	if post.AuthorID == userID {
		return nil, fmt.Errorf("%w: you cannot like your own post", ErrForbidden)
	}

	var existing int64
	err = db.GetReadOnlyDB(ctx).
		Model(&models.PostLike{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&existing).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check existing like: %w", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: you have already liked this post", ErrValidation)
	}

	like := &models.PostLike{
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now(),
	}
	if err := db.GetWriteDB(ctx).Create(like).Error; err != nil {
		return nil, fmt.Errorf("failed to create like: %w", err)
	}
	return like, nil
}

// UnlikePost убирает лайк. Чужой лайк снять нельзя: удаление идет
// строго по паре (user_id, post_id).
func (ls *LikeService) UnlikePost(ctx context.Context, userID, postID int64) error {
	res := db.GetWriteDB(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.PostLike{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete like: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: like on post %d", ErrNotFound, postID)
	}
	return nil
}

// LikeComment ставит лайк комментарию. Правила те же, что и у постов:
// свой комментарий лайкать нельзя, повтор отклоняется, комментарий
// на невидимом посте неотличим от несуществующего.
func (ls *LikeService) LikeComment(ctx context.Context, userID, commentID int64) (*models.CommentLike, error) {
	var comment models.Comment
	err := db.GetReadOnlyDB(ctx).First(&comment, commentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: comment %d", ErrNotFound, commentID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	var post models.Post
	err = db.GetReadOnlyDB(ctx).First(&post, comment.PostID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if !IsVisible(&post, Viewer{ID: userID}) {
		return nil, fmt.Errorf("%w: comment %d", ErrNotFound, commentID)
	}
	if comment.AuthorID == userID {
		return nil, fmt.Errorf("%w: you cannot like your own comment", ErrForbidden)
	}

	var existing int64
	err = db.GetReadOnlyDB(ctx).
		Model(&models.CommentLike{}).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Count(&existing).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check existing like: %w", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: you have already liked this comment", ErrValidation)
	}

	like := &models.CommentLike{
		UserID:    userID,
		CommentID: commentID,
		CreatedAt: time.Now(),
	}
	if err := db.GetWriteDB(ctx).Create(like).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment like: %w", err)
	}
	return like, nil
}

// UnlikeComment убирает лайк с комментария
func (ls *LikeService) UnlikeComment(ctx context.Context, userID, commentID int64) error {
	res := db.GetWriteDB(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&models.CommentLike{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete comment like: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: like on comment %d", ErrNotFound, commentID)
	}
	return nil
}
