package earnings

import (
	"net/url"
	"regexp"
	"strings"
)

var nameSuffixes = regexp.MustCompile(
	`(Common Stock|Registered Shares|Inc\.?|S\.A\.|Class [ABC12].*)`)

// CleanName strips common legal suffixes from a company description.
func CleanName(name string) string {
	return strings.Trim(nameSuffixes.ReplaceAllString(name, ""), " -,")
}

// SearchURL returns a web-search URL for what the company does.
func SearchURL(name string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(CleanName(name))
}
