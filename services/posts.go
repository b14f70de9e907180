package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"connectly/db"
	"connectly/models"

	"gorm.io/gorm"
)

// postTypeRequirements - обязательные ключи metadata для каждого типа поста.
// Проверяются только при создании, при чтении не перепроверяются.
var postTypeRequirements = map[string][]string{
	models.PostTypeBlog:         nil,
	models.PostTypeAnnouncement: nil,
	models.PostTypeImage:        {"file_size"},
	models.PostTypeVideo:        {"duration"},
}

type PostService struct{}

func NewPostService() *PostService {
	return &PostService{}
}

// CreatePost - фабрика постов: валидирует тип, metadata и приватность,
// сохраняет пост и асинхронно уведомляет подписчиков автора.
func (ps *PostService) CreatePost(ctx context.Context, authorID int64, postType, title, content string, metadata models.Metadata, privacy string) (*models.Post, error) {
	if authorID == 0 {
		return nil, fmt.Errorf("%w: post must have an identified author", ErrValidation)
	}
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	required, ok := postTypeRequirements[postType]
	if !ok {
		return nil, fmt.Errorf("%w: invalid post type %q", ErrValidation, postType)
	}
	for _, key := range required {
		if _, ok := metadata[key]; !ok {
			return nil, fmt.Errorf("%w: %s posts require %q in metadata", ErrValidation, postType, key)
		}
	}

	if privacy == "" {
		privacy = models.PrivacyPublic
	}
	if privacy != models.PrivacyPublic && privacy != models.PrivacyPrivate {
		return nil, fmt.Errorf("%w: invalid privacy %q", ErrValidation, privacy)
	}

	post := &models.Post{
		AuthorID:  authorID,
		Title:     title,
		Content:   content,
		PostType:  postType,
		Metadata:  metadata,
		Privacy:   privacy,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := db.GetWriteDB(ctx).Create(post).Error; err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	// Пуш-уведомления подписчикам не должны блокировать запись.
	// Кеш ленты при этом не трогаем - устаревание ограничено TTL.
	go ps.notifyFollowers(context.Background(), post)

	return post, nil
}

// GetPost возвращает пост с учетом видимости. Невидимый приватный пост
// неотличим от несуществующего, чтобы не раскрывать сам факт его наличия.
func (ps *PostService) GetPost(ctx context.Context, viewer Viewer, postID int64) (*models.Post, error) {
	var post models.Post
	err := db.GetReadOnlyDB(ctx).First(&post, postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: post %d", ErrNotFound, postID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if !IsVisible(&post, viewer) {
		return nil, fmt.Errorf("%w: post %d", ErrNotFound, postID)
	}
	return &post, nil
}

// ListPosts возвращает посты, видимые зрителю, новые первыми
func (ps *PostService) ListPosts(ctx context.Context, viewer Viewer) ([]models.Post, error) {
	var posts []models.Post
	err := db.GetReadOnlyDB(ctx).
		Order("created_at DESC, id DESC").
		Limit(MAX_FEED_CANDIDATES).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	visible := make([]models.Post, 0, len(posts))
	for i := range posts {
		if IsVisible(&posts[i], viewer) {
			visible = append(visible, posts[i])
		}
	}
	return visible, nil
}

// PostUpdate - частичное обновление поста
type PostUpdate struct {
	Title   *string
	Content *string
	Privacy *string
}

// UpdatePost меняет контент или приватность поста. Разрешено только автору.
func (ps *PostService) UpdatePost(ctx context.Context, userID, postID int64, upd PostUpdate) (*models.Post, error) {
	var post models.Post
	err := db.GetWriteDB(ctx).First(&post, postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: post %d", ErrNotFound, postID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	if post.AuthorID != userID {
		// Чужой приватный пост не раскрываем даже ошибкой доступа
		if !IsVisible(&post, Viewer{ID: userID}) {
			return nil, fmt.Errorf("%w: post %d", ErrNotFound, postID)
		}
		return nil, fmt.Errorf("%w: only the author can edit a post", ErrForbidden)
	}

	if upd.Title != nil {
		if *upd.Title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrValidation)
		}
		post.Title = *upd.Title
	}
	if upd.Content != nil {
		post.Content = *upd.Content
	}
	if upd.Privacy != nil {
		if *upd.Privacy != models.PrivacyPublic && *upd.Privacy != models.PrivacyPrivate {
			return nil, fmt.Errorf("%w: invalid privacy %q", ErrValidation, *upd.Privacy)
		}
		post.Privacy = *upd.Privacy
	}
	post.UpdatedAt = time.Now()

	if err := db.GetWriteDB(ctx).Save(&post).Error; err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return &post, nil
}

// DeletePost удаляет пост. Разрешено автору или администратору.
func (ps *PostService) DeletePost(ctx context.Context, userID int64, admin bool, postID int64) error {
	var post models.Post
	err := db.GetWriteDB(ctx).First(&post, postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: post %d", ErrNotFound, postID)
	}
	if err != nil {
		return fmt.Errorf("failed to get post: %w", err)
	}

	if post.AuthorID != userID && !admin {
		if !IsVisible(&post, Viewer{ID: userID}) {
			return fmt.Errorf("%w: post %d", ErrNotFound, postID)
		}
		return fmt.Errorf("%w: only the author or an admin can delete a post", ErrForbidden)
	}

	if err := db.GetWriteDB(ctx).Delete(&post).Error; err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

// notifyFollowers рассылает событие о новом публичном посте подписчикам
// автора: через RabbitMQ, при недоступном брокере - напрямую в WebSocket
func (ps *PostService) notifyFollowers(ctx context.Context, post *models.Post) {
	if post.Privacy != models.PrivacyPublic {
		return
	}

	var followerIDs []int64
	err := db.GetReadOnlyDB(ctx).
		Model(&models.Follow{}).
		Where("followed_id = ?", post.AuthorID).
		Pluck("follower_id", &followerIDs).Error
	if err != nil {
		log.Printf("ERROR: failed to get followers for userID=%d: %v", post.AuthorID, err)
		return
	}

	for _, followerID := range followerIDs {
		event := PostEvent{
			UserID:    followerID,
			PostID:    post.ID,
			AuthorID:  post.AuthorID,
			Title:     post.Title,
			CreatedAt: post.CreatedAt,
		}
		if err := PublishPostEvent(ctx, event); err != nil {
			sendDirectWSEvent(event)
		}
	}
}
