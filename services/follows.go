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

type FollowService struct{}

func NewFollowService() *FollowService {
	return &FollowService{}
}

// Follow подписывает followerID на followedID.
// Подписка на себя и повторная подписка отклоняются как предусловия,
// невалидное состояние в базу не попадает.
func (fs *FollowService) Follow(ctx context.Context, followerID, followedID int64) error {
	if followerID == followedID {
		return fmt.Errorf("%w: you cannot follow yourself", ErrForbidden)
	}

	var target models.User
	err := db.GetReadOnlyDB(ctx).First(&target, followedID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: user %d", ErrNotFound, followedID)
	}
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	var existing int64
	err = db.GetReadOnlyDB(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&existing).Error
	if err != nil {
		return fmt.Errorf("failed to check existing follow: %w", err)
	}
	if existing > 0 {
		return fmt.Errorf("%w: already following user %d", ErrValidation, followedID)
	}

	follow := &models.Follow{
		FollowerID: followerID,
		FollowedID: followedID,
		CreatedAt:  time.Now(),
	}
	if err := db.GetWriteDB(ctx).Create(follow).Error; err != nil {
		return fmt.Errorf("failed to create follow: %w", err)
	}
	return nil
}

// Unfollow убирает подписку
func (fs *FollowService) Unfollow(ctx context.Context, followerID, followedID int64) error {
	res := db.GetWriteDB(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete follow: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: follow of user %d", ErrNotFound, followedID)
	}
	return nil
}

// GetFollowing возвращает пользователей, на которых подписан userID
func (fs *FollowService) GetFollowing(ctx context.Context, userID int64) ([]models.User, error) {
	var users []models.User
	err := db.GetReadOnlyDB(ctx).
		Table("users u").
		Joins("JOIN follows f ON f.followed_id = u.id").
		Where("f.follower_id = ?", userID).
		Select("u.id, u.username, u.email, u.created_at").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get following: %w", err)
	}
	return users, nil
}

// GetFollowers возвращает подписчиков userID
func (fs *FollowService) GetFollowers(ctx context.Context, userID int64) ([]models.User, error) {
	var users []models.User
	err := db.GetReadOnlyDB(ctx).
		Table("users u").
		Joins("JOIN follows f ON f.follower_id = u.id").
		Where("f.followed_id = ?", userID).
		Select("u.id, u.username, u.email, u.created_at").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get followers: %w", err)
	}
	return users, nil
}
