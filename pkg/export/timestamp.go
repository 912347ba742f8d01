package export

import "fmt"

// FormatTimestamp 将厘秒时间格式化为SRT时间戳 (HH:MM:SS,mmm)
//
// 小时字段不做24小时折叠，超过24小时的时间照常输出（如 27:15:03,500）
func FormatTimestamp(cs int64) string {
	totalMS := cs * 10 // 厘秒 -> 毫秒

	hours := totalMS / 3_600_000
	remMS := totalMS % 3_600_000

	minutes := remMS / 60_000
	remMS = remMS % 60_000

	seconds := remMS / 1_000
	millis := remMS % 1_000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}
