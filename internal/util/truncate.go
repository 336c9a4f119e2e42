package util

import "fmt"

// DefaultLogMaxLen caps provider response bodies in log output.
const DefaultLogMaxLen = 1024

// MaskToken reduces a token to its tail for logging. Raw tokens never reach
// log files or HTTP responses.
func MaskToken(t string) string {
	if len(t) < 20 {
		return t
	}
	return "..." + t[len(t)-12:]
}

// TruncateLog truncates long strings for verbose logging.
func TruncateLog(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + fmt.Sprintf("... [truncated, %d bytes total]", len(s))
}
