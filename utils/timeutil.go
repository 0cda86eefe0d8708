package utils

import "time"

// 常用时间格式常量
const (
	DateFormat  = "2006-01-02"
	MonthFormat = "2006-01"
)

// TruncateToMonth 截断到自然月的第一天（UTC）
func TruncateToMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// NextMonth 返回下一个自然月的第一天
func NextMonth(t time.Time) time.Time {
	return TruncateToMonth(t).AddDate(0, 1, 0)
}

// PrevMonth 返回上一个自然月的第一天
func PrevMonth(t time.Time) time.Time {
	return TruncateToMonth(t).AddDate(0, -1, 0)
}

// FormatMonth 格式化为 YYYY-MM
func FormatMonth(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(MonthFormat)
}

// FormatDate 格式化为日期字符串
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateFormat)
}

// DaysBetween 两个时间点之间的整天数
func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
