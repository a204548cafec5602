package session

import "fmt"

// FormatElapsed renders milliseconds for display. Under a minute it shows
// one decimal of seconds (truncated), otherwise minutes and zero-padded
// seconds.
func FormatElapsed(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	seconds := ms / 1000
	if seconds < 60 {
		tenths := ms / 100
		return fmt.Sprintf("%d.%ds", tenths/10, tenths%10)
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
