// internal/analyzer/analyzer.go
// Package analyzer combines authentication-header signals, sender domain
// heuristics, body-text flags and link findings into a trust score, a risk
// level and a list of human-readable reasons. The whole package is pure and
// synchronous: identical records produce bit-for-bit identical results.
package analyzer

import (
	"fmt"
	"math"
	"strings"

	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/internal/domains"
	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/internal/models"
)

// maxRiskSignals normalizes the reason count into a trust score. It is a
// fixed ceiling of expected signals, not the number of checks actually run;
// past ten reasons the score simply clamps to zero.
const maxRiskSignals = 10

// legitimacyThreshold flags a domain whose legitimacy score falls below it.
const legitimacyThreshold = 0.4

// Analyze scores one extracted record. It never returns an error and never
// panics outward: an internal failure yields a result whose Error field is
// set instead of the normal shape.
func Analyze(rec *models.EmailRecord) (result models.AnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			result = models.AnalysisResult{Error: fmt.Sprintf("analysis failed: %v", r)}
		}
	}()
	return score(rec)
}

func score(rec *models.EmailRecord) models.AnalysisResult {
	reasons := []string{}

	// Authentication results (textual inspection only; no crypto checks).
	auth := strings.ToLower(strings.Join(headerValues(rec, "authentication-results"), " "))
	if strings.Contains(auth, "spf=fail") {
		reasons = append(reasons, "SPF failed")
	}
	if strings.Contains(auth, "dkim=fail") || strings.Contains(auth, "dkim=none") {
		reasons = append(reasons, "DKIM missing or failed")
	}
	if strings.Contains(auth, "dmarc=fail") {
		reasons = append(reasons, "DMARC failed")
	}

	sd := ExtractSenderDomains(rec)

	if sd.From != "" {
		senderScore := domains.LegitimacyScore(sd.From)
		if senderScore < legitimacyThreshold {
			reasons = append(reasons, fmt.Sprintf(
				"sender domain looks suspicious (score=%.2f): %s", senderScore, sd.From))
		}
	}

	if sd.ReplyTo != "" && sd.ReplyTo != sd.From {
		reasons = append(reasons, "reply-to domain differs from sender")
	}

	// The snippet overlaps plainText/textFromHtml on purpose; the original
	// model was tuned against the concatenated text and the triple count
	// stays.
	body := strings.ToLower(rec.PlainText + rec.TextFromHTML + rec.RawSnippet)
	if strings.Contains(body, "external sender") {
		reasons = append(reasons, "external sender banner detected")
	}

	suspiciousLinks := EvaluateLinks(rec.Links)
	if len(suspiciousLinks) > 0 {
		reasons = append(reasons, "one or more links appear suspicious")
	}

	trust := 1.0 - float64(len(reasons))/maxRiskSignals
	if trust < 0.0 {
		trust = 0.0
	}
	if trust > 1.0 {
		trust = 1.0
	}

	level := models.RiskLow
	switch {
	case trust < 0.3:
		level = models.RiskHigh
	case trust < 0.7:
		level = models.RiskMedium
	}

	return models.AnalysisResult{
		TrustScore:      math.Round(trust*100) / 100,
		RiskLevel:       level,
		Reasons:         reasons,
		SuspiciousLinks: suspiciousLinks,
	}
}

func headerValues(rec *models.EmailRecord, name string) []string {
	if rec == nil || rec.Headers == nil {
		return nil
	}
	return rec.Headers[name]
}
