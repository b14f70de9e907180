package services

import "connectly/models"

const (
	DefaultPageSize = 10  // размер страницы по умолчанию
	MaxPageSize     = 100 // максимально допустимый размер страницы
)

// NormalizePage приводит номер страницы к валидному значению (минимум 1)
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// NormalizePageSize приводит размер страницы к диапазону [1, MaxPageSize].
// Невалидные значения деградируют к дефолту, а не к ошибке.
func NormalizePageSize(size int) int {
	if size < 1 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// Paginate нарезает упорядоченную последовательность кандидатов на страницы.
// Страница за пределами диапазона дает пустой список с has_next=false.
// Функция детерминирована: одинаковый вход всегда дает одинаковый выход,
// это требование кеша, ключ которого включает (page, page_size).
func Paginate(posts []models.FeedPost, page, size int) ([]models.FeedPost, models.PageMeta) {
	page = NormalizePage(page)
	size = NormalizePageSize(size)

	meta := models.PageMeta{
		Page:     page,
		PageSize: size,
		HasPrev:  page > 1,
	}

	start := (page - 1) * size
	if start >= len(posts) {
		return []models.FeedPost{}, meta
	}

	end := start + size
	if end > len(posts) {
		end = len(posts)
	}

	meta.HasNext = end < len(posts)
	if meta.HasNext {
		meta.NextPage = page + 1
	}

	return posts[start:end], meta
}
