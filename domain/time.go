package domain

import "time"

// TimeLayout is the wire format for every timestamp in the API. It matches
// the seconds-precision local-datetime form produced by date inputs with a
// midnight time component appended.
const TimeLayout = "2006-01-02T15:04:05"

// ParseTime parses a wire timestamp. The zero time and false are returned
// for blank or malformed values.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatTime renders t in the wire format.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}
