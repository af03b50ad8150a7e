package constants

import "time"

// ISO8601MillisUTCFormat matches JavaScript's Date.prototype.toISOString when the
// time is in UTC, e.g. 2026-10-18T09:30:00.000Z.
const ISO8601MillisUTCFormat = "2006-01-02T15:04:05.000Z07:00"

// FormatISO8601UTC renders t the way the webhook payload expects it.
func FormatISO8601UTC(t time.Time) string {
	return t.UTC().Format(ISO8601MillisUTCFormat)
}
