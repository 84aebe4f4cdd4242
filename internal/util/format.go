package util //nolint:revive // package name util hosts shared formatting helpers

import "time"

// FormatUptime formats a process uptime for display, handling edge cases.
// Returns "—" for zero or negative durations, truncates to seconds for readability.
func FormatUptime(d time.Duration) string {
	switch {
	case d <= 0:
		return "—"
	case d < time.Second:
		return d.Truncate(time.Millisecond).String()
	default:
		return d.Truncate(time.Second).String()
	}
}
