package models

import "time"

// FeedPost - денормализованная строка кандидата ленты (пост + имя автора)
type FeedPost struct {
	ID         int64     `json:"id"`
	AuthorID   int64     `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Title      string    `json:"title"`
	Privacy    string    `json:"privacy"`
	CreatedAt  time.Time `json:"created_at"`
}

// PostSummary - элемент страницы ленты, отдаваемый клиенту
type PostSummary struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	AuthorName   string    `json:"author_name"`
	Privacy      string    `json:"privacy"`
	CreatedAt    time.Time `json:"created_at"`
	CommentCount int64     `json:"comment_count"`
	LikeCount    int64     `json:"like_count"`
	Likes        []string  `json:"likes"`
}

// PageMeta - метаданные пагинации
type PageMeta struct {
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	HasNext  bool `json:"has_next"`
	HasPrev  bool `json:"has_prev"`
	NextPage int  `json:"next_page,omitempty"`
}

// FeedPage - страница ленты вместе с метаданными, кешируется целиком
type FeedPage struct {
	Posts []PostSummary `json:"posts"`
	Meta  PageMeta      `json:"meta"`
}
