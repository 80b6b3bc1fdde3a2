package handlers

import (
	"regexp"
	"strings"
)

var urlToken = regexp.MustCompile(`^https?://\S+$`)

// AddArguments are the parts of an /add command.
type AddArguments struct {
	Category string
	Title    string
	URL      string
}

// ParseAddArguments splits "/add <category> <title?> <url>". The URL is the
// last URL-shaped token and the category is the first token; everything in
// between is the title. Tokens after the URL are ignored. It reports false
// when there is no URL or nothing precedes it.
func ParseAddArguments(text string) (AddArguments, bool) {
	parts := strings.Fields(text)
	if len(parts) > 0 && strings.HasPrefix(parts[0], "/add") {
		parts = parts[1:]
	}

	urlIdx := -1
	for i := len(parts) - 1; i >= 0; i-- {
		if urlToken.MatchString(parts[i]) {
			urlIdx = i
			break
		}
	}
	if urlIdx < 1 {
		return AddArguments{}, false
	}

	return AddArguments{
		Category: parts[0],
		Title:    strings.Join(parts[1:urlIdx], " "),
		URL:      parts[urlIdx],
	}, true
}

// isURLText reports whether free text starts like a web link.
func isURLText(text string) bool {
	return strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://")
}
