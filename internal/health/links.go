package health

import (
	"regexp"
	"strings"
)

// linkPattern matches, in order of preference at any position:
// Markdown inline links [text](url), angle-bracket links <url>, and bare
// http(s) URLs. An angle link is a single token, so comparisons in prose
// and HTML comments are not links.
var linkPattern = regexp.MustCompile(`\[[^\]]*\]\(([^)]+)\)|<([^<>\s]+)>|https?://[^\s<>()\[\]]+`)

// validLinkPrefixes are the prefixes a link needs to be considered well-formed.
var validLinkPrefixes = []string{"http://", "https://", "/", "./"}

// LinkSet partitions the links found in a document.
type LinkSet struct {
	Valid  []string `json:"valid" yaml:"valid"`
	Broken []string `json:"broken" yaml:"broken"`
}

// Len returns the total number of links in the set.
func (s LinkSet) Len() int {
	return len(s.Valid) + len(s.Broken)
}

// ClassifyLinks extracts links from text and splits them into valid and
// broken, preserving the order in which they appear. Duplicates are kept.
// Both lists are non-nil so they serialize as empty arrays.
func ClassifyLinks(text string) LinkSet {
	set := LinkSet{Valid: []string{}, Broken: []string{}}
	for _, m := range linkPattern.FindAllStringSubmatchIndex(text, -1) {
		link := matchedURL(text, m)
		if isWellFormed(link) {
			set.Valid = append(set.Valid, link)
		} else {
			set.Broken = append(set.Broken, link)
		}
	}
	return set
}

// matchedURL picks the URL-bearing part of a match: the (url) group for
// Markdown links, the <url> group for angle links, the whole match otherwise.
func matchedURL(text string, m []int) string {
	switch {
	case m[2] >= 0:
		return text[m[2]:m[3]]
	case m[4] >= 0:
		return text[m[4]:m[5]]
	default:
		return text[m[0]:m[1]]
	}
}

func isWellFormed(link string) bool {
	for _, prefix := range validLinkPrefixes {
		if strings.HasPrefix(link, prefix) {
			return true
		}
	}
	return false
}
