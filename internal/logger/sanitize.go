package logger

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Length caps applied before user-controlled values reach the logs
const (
	MaxPathLength          = 500
	MaxIDLength            = 128
	MaxErrorMessageLength  = 1000
	MaxGeneralStringLength = 2000
	MaxTitleLength         = 200
)

// SanitizePath cleans a request path for logging
func SanitizePath(path string) string {
	return SanitizeString(path, MaxPathLength)
}

// SanitizeID cleans a record id taken from a request path
func SanitizeID(id string) string {
	return SanitizeString(id, MaxIDLength)
}

// SanitizeTitle cleans a task title, goal title or metric name
func SanitizeTitle(title string) string {
	return SanitizeString(title, MaxTitleLength)
}

// SanitizeError cleans an error message for logging. nil yields "".
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return SanitizeString(err.Error(), MaxErrorMessageLength)
}

// SanitizeString drops invalid UTF-8 and control characters other than
// whitespace, then truncates to maxLength bytes with a "..." marker.
// maxLength <= 0 uses MaxGeneralStringLength.
func SanitizeString(s string, maxLength int) string {
	if s == "" {
		return ""
	}
	if maxLength <= 0 {
		maxLength = MaxGeneralStringLength
	}
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	s = strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		return -1
	}, s)
	if len(s) > maxLength {
		s = s[:maxLength] + "..."
	}
	return s
}
