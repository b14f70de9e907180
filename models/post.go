package models

import "time"

// Типы постов и уровни приватности
const (
	PostTypeBlog         = "blog"
	PostTypeAnnouncement = "announcement"
	PostTypeImage        = "image"
	PostTypeVideo        = "video"

	PrivacyPublic  = "public"
	PrivacyPrivate = "private"
)

// Metadata - произвольные атрибуты поста, зависящие от типа
// (image -> file_size, video -> duration)
type Metadata map[string]interface{}

// Post - модель поста пользователя
type Post struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AuthorID  int64     `gorm:"index" json:"author_id"`
	Title     string    `gorm:"size:255" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	PostType  string    `gorm:"size:20" json:"post_type"`
	Metadata  Metadata  `gorm:"serializer:json" json:"metadata,omitempty"`
	Privacy   string    `gorm:"size:10;index;default:public" json:"privacy"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}

// Comment - комментарий к посту
type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID    int64     `gorm:"index" json:"post_id"`
	AuthorID  int64     `gorm:"index" json:"author_id"`
	Text      string    `gorm:"type:text" json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Comment) TableName() string {
	return "comments"
}

// PostLike - лайк поста, уникален по паре (user_id, post_id)
type PostLike struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"index:post_like_idx,unique" json:"user_id"`
	PostID    int64     `gorm:"index:post_like_idx,unique" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (PostLike) TableName() string {
	return "post_likes"
}

// CommentLike - лайк комментария, уникален по паре (user_id, comment_id)
type CommentLike struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"index:comment_like_idx,unique" json:"user_id"`
	CommentID int64     `gorm:"index:comment_like_idx,unique" json:"comment_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (CommentLike) TableName() string {
	return "comment_likes"
}
