// internal/analyzer/links.go
package analyzer

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/internal/domains"
	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/internal/models"
)

var shorteners = []string{"bit.ly", "tinyurl.com", "t.co"}

// badTLDSuffixes is the link-evaluation table. It only partially overlaps
// the sender-identity TLD set in the domains package; the two are tuned
// separately and stay separate.
var badTLDSuffixes = []string{".ru", ".xyz", ".top", ".click", ".shop"}

// EvaluateLinks runs the per-link heuristics and keeps only links with at
// least one triggered reason, in input order. An href that cannot be parsed
// as a URL yields an empty domain and never an error.
func EvaluateLinks(links []models.Link) []models.SuspiciousLink {
	suspicious := []models.SuspiciousLink{}

	for _, link := range links {
		href := link.Href
		domain := linkDomain(href)

		var reasons []string

		if strings.HasPrefix(href, "http://") {
			reasons = append(reasons, "uses HTTP instead of HTTPS")
		}

		for _, s := range shorteners {
			if strings.HasSuffix(domain, s) {
				reasons = append(reasons, "URL shortener")
				break
			}
		}

		for _, tld := range badTLDSuffixes {
			if strings.HasSuffix(domain, tld) {
				reasons = append(reasons, "suspicious TLD")
				break
			}
		}

		if domain != "" {
			if score := domains.LegitimacyScore(domain); score < legitimacyThreshold {
				reasons = append(reasons, fmt.Sprintf("domain looks suspicious (score=%.2f)", score))
			}
		}

		if len(reasons) > 0 {
			suspicious = append(suspicious, models.SuspiciousLink{
				Href:    href,
				Domain:  domain,
				Reasons: reasons,
			})
		}
	}

	return suspicious
}

// linkDomain parses the href as a URL, prefixing http:// when the href does
// not already start with "http" so bare domains and relative links parse.
func linkDomain(href string) string {
	raw := href
	if !strings.HasPrefix(raw, "http") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
