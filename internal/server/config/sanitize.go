// Package config defines the server configuration structure.
package config

import (
	"html/template"

	"github.com/microcosm-cc/bluemonday"
)

// messagePolicy allows inline formatting and links in the page message.
var messagePolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "strong", "i", "em", "code", "br", "span")
	p.AllowStandardURLs()
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}()

// SanitizeMessage returns the configured message as HTML that is safe to
// render unescaped. Scripts, handlers and unknown elements are stripped.
func SanitizeMessage(msg string) template.HTML {
	return template.HTML(messagePolicy.Sanitize(msg))
}
