package render

import (
	"regexp"
	"strings"
)

var (
	htmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
		"`", "&#96;",
	)
)

// EscapeHTML escapes text for an HTML element body.
func EscapeHTML(s string) string { return htmlEscaper.Replace(s) }

// EscapeAttr escapes text for a quoted HTML attribute value.
func EscapeAttr(s string) string { return attrEscaper.Replace(s) }

var urlPattern = regexp.MustCompile(`(?i)^https?://`)

// IsURL reports whether a coerced cell should render as a hyperlink.
func IsURL(s string) bool { return urlPattern.MatchString(s) }
