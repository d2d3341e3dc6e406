package bootstrap

import (
	"fmt"
	"strings"
)

// EscapeXPathString makes text safe for use as an XPath 1.0 string literal.
// XPath 1.0 has no escaping mechanism for single quotes, so the string is
// split on them and reassembled with concat().
func EscapeXPathString(text string) string {
	split := strings.ReplaceAll(text, "'", `', "'", '`)
	return fmt.Sprintf("concat('%s', '')", split)
}
