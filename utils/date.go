package utils

import "time"

// TodayString returns the current local date as YYYY-MM-DD. Quota resets compare
// this string against the stored usage date; local time is intentional.
func TodayString() string {
	return time.Now().Format("2006-01-02")
}

// HoursSince returns fractional hours elapsed since an RFC3339 timestamp.
// Unparseable timestamps count as zero hours old.
func HoursSince(createdAt string) float64 {
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return 0
	}
	return time.Since(t).Hours()
}
