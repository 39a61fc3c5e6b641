package model

// AvailabilitySlot - еженедельный интервал внутри записи (enrollment).
// Хранится как есть, валидируется при генерации занятий.
type AvailabilitySlot struct {
	Day       string `json:"day"`       // "Monday" ... "Sunday"
	StartTime string `json:"startTime"` // "HH:MM", 24h
	EndTime   string `json:"endTime"`   // "HH:MM", 24h
}
