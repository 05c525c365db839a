// internal/htmltext/links.go
package htmltext

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/internal/models"
)

// urlPattern matches http(s) URLs, mailto addresses and bare www. hosts in
// plain text, ending at whitespace, angle brackets or a double quote.
var urlPattern = regexp.MustCompile(`(?i)(https?://|mailto:|www\.)[^\s<>"]+`)

const (
	anchorSnippetMax = 200
	contextBefore    = 40
	contextAfter     = 160
)

// ExtractLinks collects links from the HTML body (anchor elements, document
// order) followed by regex matches in the plain text, then deduplicates by
// exact trimmed href with the first occurrence winning. Links with an empty
// href are discarded.
func ExtractLinks(htmlSrc, plain string) []models.Link {
	links := Anchors(htmlSrc)
	links = append(links, PlainTextLinks(plain)...)

	seen := make(map[string]bool, len(links))
	out := make([]models.Link, 0, len(links))
	for _, l := range links {
		key := strings.TrimSpace(l.Href)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, l)
	}
	return out
}

// Anchors returns every anchor element carrying an href attribute, paired
// with its trimmed visible text. Parse failures yield no links rather than
// an error.
func Anchors(htmlSrc string) []models.Link {
	if htmlSrc == "" {
		return nil
	}

	doc, err := html.Parse(strings.NewReader(htmlSrc))
	if err != nil {
		return nil
	}

	var links []models.Link
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href, ok := attr(n, "href"); ok {
				links = append(links, anchorLink(n, href))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links
}

func anchorLink(n *html.Node, href string) models.Link {
	link := models.Link{Href: href}

	var b strings.Builder
	collectText(n, &b)
	text := strings.TrimSpace(whitespacePattern.ReplaceAllString(b.String(), " "))
	if text != "" {
		snippet := Snippet(text, anchorSnippetMax)
		link.Text = &text
		link.ContextSnippet = &snippet
	}
	return link
}

// PlainTextLinks scans plain text left to right for URL-like tokens. Matches
// starting with "www." get an "http://" prefix so they parse as URLs later;
// the context snippet spans up to 40 characters before and 160 after the
// match, clipped to the text bounds.
func PlainTextLinks(plain string) []models.Link {
	if plain == "" {
		return nil
	}

	var links []models.Link
	for _, m := range urlPattern.FindAllStringIndex(plain, -1) {
		raw := plain[m[0]:m[1]]
		href := raw
		if strings.HasPrefix(raw, "www.") {
			href = "http://" + raw
		}

		snippet := lastRunes(plain[:m[0]], contextBefore) + firstRunes(plain[m[0]:], contextAfter)
		links = append(links, models.Link{
			Href:           href,
			ContextSnippet: &snippet,
		})
	}
	return links
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}
