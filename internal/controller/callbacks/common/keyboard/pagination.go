package keyboard

import (
	"fmt"

	"github.com/go-telegram/bot/models"
)

// PaginationButtons создаёт ряд кнопок пагинации
// prefix - префикс для callback (например "sessions_page:")
// currentPage - текущая страница (0-based)
// totalPages - всего страниц
func PaginationButtons(prefix string, currentPage, totalPages int) []models.InlineKeyboardButton {
	if totalPages <= 1 {
		return nil
	}

	var buttons []models.InlineKeyboardButton

	if currentPage > 0 {
		buttons = append(buttons, Button("⬅️", fmt.Sprintf("%s%d", prefix, currentPage-1)))
	}

	buttons = append(buttons, Button(
		fmt.Sprintf("📄 %d/%d", currentPage+1, totalPages),
		Noop,
	))

	if currentPage < totalPages-1 {
		buttons = append(buttons, Button("➡️", fmt.Sprintf("%s%d", prefix, currentPage+1)))
	}

	return buttons
}

// AddPagination добавляет пагинацию к builder
func (b *Builder) AddPagination(prefix string, currentPage, totalPages int) *Builder {
	buttons := PaginationButtons(prefix, currentPage, totalPages)
	if len(buttons) > 0 {
		b.Row(buttons...)
	}
	return b
}

// WeekPagination создаёт пагинацию по неделям
func WeekPagination(prefix string, weekOffset int) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{
		Button("◀️ Previous week", fmt.Sprintf("%s%d", prefix, weekOffset-1)),
		Button("Next week ▶️", fmt.Sprintf("%s%d", prefix, weekOffset+1)),
	}
}

// Page возвращает границы страницы [from, to) и нормализованный номер страницы
func Page(total, page, pageSize int) (from, to, current, totalPages int) {
	if pageSize <= 0 {
		pageSize = 1
	}
	totalPages = (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 0 {
		page = 0
	}
	if page >= totalPages {
		page = totalPages - 1
	}

	from = page * pageSize
	to = from + pageSize
	if to > total {
		to = total
	}
	return from, to, page, totalPages
}
