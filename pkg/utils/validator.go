package utils

import (
	"regexp"
	"strings"
)

var (
	controlChars   = regexp.MustCompile(`[\x00-\x1f\x7f]`)
	unsafeFileRune = regexp.MustCompile(`[/\\:*?"<>|]`)
)

// SanitizeString removes control characters
func SanitizeString(s string) string {
	return controlChars.ReplaceAllString(s, "")
}

// SanitizeFileName makes a file name safe to join under a directory.
// Path separators and characters reserved on Windows become underscores.
func SanitizeFileName(name string) string {
	name = SanitizeString(strings.TrimSpace(name))
	name = unsafeFileRune.ReplaceAllString(name, "_")
	name = strings.TrimLeft(name, ".")
	if name == "" {
		return "_"
	}
	return name
}
