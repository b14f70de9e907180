package models

import "time"

// Follow - подписка одного пользователя на другого.
// Пара (follower_id, followed_id) уникальна, подписка на себя запрещена
// на уровне сервиса.
type Follow struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FollowerID int64     `gorm:"index:follow_pair_idx,unique" json:"follower_id"`
	FollowedID int64     `gorm:"index:follow_pair_idx,unique" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Follow) TableName() string {
	return "follows"
}
