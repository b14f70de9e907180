package services

import "connectly/models"

// Viewer - идентичность, от имени которой строится лента.
// Нулевой ID означает анонимного зрителя.
type Viewer struct {
	ID int64
}

func (v Viewer) Anonymous() bool {
	return v.ID == 0
}

// AnonymousViewer - маркер анонимного зрителя
var AnonymousViewer = Viewer{}

// IsVisible - единственный источник правды о приватности.
// Публичный пост виден всем, приватный - только автору.
// Все места, отдающие посты наружу (лента, список, детальная карточка),
// обязаны проходить через эту функцию, а не повторять правило у себя.
func IsVisible(post *models.Post, viewer Viewer) bool {
	return visibleTo(post.AuthorID, post.Privacy, viewer)
}

func visibleTo(authorID int64, privacy string, viewer Viewer) bool {
	if privacy == models.PrivacyPublic {
		return true
	}
	return !viewer.Anonymous() && viewer.ID == authorID
}
