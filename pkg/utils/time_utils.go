package utils

import "time"

// UTCDayKey returns the UTC calendar date of t, used for daily quota rollover.
func UTCDayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func SameUTCDay(a, b time.Time) bool {
	return UTCDayKey(a) == UTCDayKey(b)
}

func NowUnixSeconds() int64 { return time.Now().Unix() }

// TimeOfDayBucket maps a local time to the buckets the context engine matches
// against: morning, lunch, afternoon, evening, night.
func TimeOfDayBucket(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 6 && h < 11:
		return "morning"
	case h >= 11 && h < 14:
		return "lunch"
	case h >= 14 && h < 17:
		return "afternoon"
	case h >= 17 && h < 22:
		return "evening"
	default:
		return "night"
	}
}
