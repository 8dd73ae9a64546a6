package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Generate turns a product name into its URL slug: lower case, with every
// run of characters outside [a-z0-9] collapsed into a single hyphen.
//
//	"Dining Table" -> "dining-table"
//	"T-shirt"      -> "t-shirt"
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
