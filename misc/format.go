package misc

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Count formats n with thousands separators for log output.
func Count(n int) string {
	return printer.Sprintf("%d", n)
}
