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

type CommentService struct{}

func NewCommentService() *CommentService {
	return &CommentService{}
}

// CreateComment создает комментарий. Пост должен быть видим автору
// комментария, иначе пост считается несуществующим.
func (cs *CommentService) CreateComment(ctx context.Context, authorID, postID int64, text string) (*models.Comment, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", ErrValidation)
	}

	if err := cs.ensurePostVisible(ctx, Viewer{ID: authorID}, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:    postID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.GetWriteDB(ctx).Create(comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// ListComments возвращает комментарии поста, старые первыми
func (cs *CommentService) ListComments(ctx context.Context, viewer Viewer, postID int64) ([]models.Comment, error) {
	if err := cs.ensurePostVisible(ctx, viewer, postID); err != nil {
		return nil, err
	}

	var comments []models.Comment
	err := db.GetReadOnlyDB(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// UpdateComment меняет текст комментария. Разрешено только автору.
func (cs *CommentService) UpdateComment(ctx context.Context, userID, commentID int64, text string) (*models.Comment, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", ErrValidation)
	}

	comment, err := cs.getComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != userID {
		return nil, fmt.Errorf("%w: only the author can edit a comment", ErrForbidden)
	}

	comment.Text = text
	comment.UpdatedAt = time.Now()
	if err := db.GetWriteDB(ctx).Save(comment).Error; err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return comment, nil
}

// DeleteComment удаляет комментарий. Разрешено автору или администратору.
func (cs *CommentService) DeleteComment(ctx context.Context, userID int64, admin bool, commentID int64) error {
	comment, err := cs.getComment(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != userID && !admin {
		return fmt.Errorf("%w: only the author or an admin can delete a comment", ErrForbidden)
	}

	if err := db.GetWriteDB(ctx).Delete(comment).Error; err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

func (cs *CommentService) getComment(ctx context.Context, commentID int64) (*models.Comment, error) {
	var comment models.Comment
	err := db.GetReadOnlyDB(ctx).First(&comment, commentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: comment %d", ErrNotFound, commentID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &comment, nil
}

func (cs *CommentService) ensurePostVisible(ctx context.Context, viewer Viewer, postID int64) error {
	var post models.Post
	err := db.GetReadOnlyDB(ctx).First(&post, postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: post %d", ErrNotFound, postID)
	}
	if err != nil {
		return fmt.Errorf("failed to get post: %w", err)
	}
	if !IsVisible(&post, viewer) {
		return fmt.Errorf("%w: post %d", ErrNotFound, postID)
	}
	return nil
}
