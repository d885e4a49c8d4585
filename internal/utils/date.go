package utils

import "time"

// PostDateLayout renders a post timestamp as e.g. 2024年03月07日09時05分
const PostDateLayout = "2006年01月02日15時04分"

// FormatDate formats a post timestamp for display in the server's local zone
func FormatDate(t time.Time) string {
	return t.Local().Format(PostDateLayout)
}
