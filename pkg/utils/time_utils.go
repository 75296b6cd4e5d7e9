package utils

import "time"

// Mountain time (America/Denver): where the tours run and where the
// operators read sync timestamps.
var mtLoc = func() *time.Location {
	if loc, err := time.LoadLocation("America/Denver"); err == nil {
		return loc
	}
	return time.FixedZone("MST", -7*3600)
}()

// NowISO8601 is the watermark format: UTC, fixed-width, zero-padded, so
// strictly-greater-than string comparison matches chronological order.
func NowISO8601() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

// FormatDisplayMT renders a timestamp for operator-facing output.
func FormatDisplayMT(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(mtLoc).Format("2006-01-02 15:04:05 MST")
}

// ParseISO8601 reads a watermark written by NowISO8601.
func ParseISO8601(value string) (time.Time, error) {
	return time.Parse("2006-01-02T15:04:05.000Z", value)
}
