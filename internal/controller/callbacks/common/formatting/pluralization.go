package formatting

import "fmt"

// Plural возвращает "1 session", "2 sessions"
func Plural(count int, singular string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %ss", count, singular)
}
