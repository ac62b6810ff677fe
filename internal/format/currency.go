package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numbers = message.NewPrinter(language.Japanese)

// Yen formats a whole-yen amount as ¥ followed by a comma-grouped integer.
// Negative amounts keep the sign after the symbol (¥-1,234).
func Yen(amount int64) string {
	return "¥" + Group(amount)
}

// Group formats an integer with comma thousands separators.
func Group(n int64) string {
	return numbers.Sprintf("%d", n)
}
