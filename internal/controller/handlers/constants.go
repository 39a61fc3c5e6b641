package handlers

import "time"

// Константы диалогов
const (
	// Формат даты, который вводит пользователь при запросе переноса
	RescheduleInputLayout = "2006-01-02 15:04"

	// Максимальная длина комментария к запросу переноса
	RescheduleCommentMaxLength = 300

	// Сколько дней вперёд показывать в /mysessions
	UpcomingSessionsDays = 14

	// Формат даты в аргументе /generate
	GenerateArgLayout = "2006-01-02"

	// Время на обработку долгих команд (генерация, картинка недели)
	longCommandTimeout = 2 * time.Minute
)
