package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var commentPolicy = bluemonday.UGCPolicy()

// SanitizeComment strips scripts, event handlers and unsafe URLs, keeping
// inert formatting markup.
func SanitizeComment(text string) string {
	return strings.TrimSpace(commentPolicy.Sanitize(text))
}
