// internal/htmltext/htmltext.go
// Package htmltext turns untrusted HTML into plain text and link lists. All
// parsing happens offline on the supplied string: nothing is executed and no
// remote reference is ever resolved.
package htmltext

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Text extracts the visible text of an HTML document: script, style and
// noscript subtrees are dropped, remaining text nodes are joined and
// whitespace runs collapse to single spaces. A parse failure falls back to
// naive tag stripping.
func Text(htmlSrc string) string {
	if htmlSrc == "" {
		return ""
	}

	doc, err := html.Parse(strings.NewReader(htmlSrc))
	if err != nil {
		return StripTags(htmlSrc)
	}

	var b strings.Builder
	collectText(doc, &b)
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(b.String(), " "))
}

// StripTags is the fallback transform: every <...> token becomes a space,
// whitespace runs collapse, the result is trimmed.
func StripTags(htmlSrc string) string {
	s := tagPattern.ReplaceAllString(htmlSrc, " ")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript":
			return
		}
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// firstRunes returns at most n leading characters of s.
func firstRunes(s string, n int) string {
	if n <= 0 || s == "" {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// lastRunes returns at most n trailing characters of s.
func lastRunes(s string, n int) string {
	if n <= 0 || s == "" {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

// Snippet clips s to its first n characters, for context fields that cap at
// a fixed width.
func Snippet(s string, n int) string {
	return firstRunes(s, n)
}
