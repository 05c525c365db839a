// internal/domains/domains.go
// Package domains computes lexical features of a domain name and maps them to
// a legitimacy probability with a fixed, hand-tuned logistic model. There is
// no learning and no calibration data; the coefficients are constants and the
// tables are read-only, so concurrent callers need no synchronization.
package domains

import (
	"math"
	"strings"
)

// suspiciousTLDs feeds the sender-identity feature model. The link evaluator
// in the analyzer package keeps its own, partially overlapping suffix table;
// the two are tuned independently and must not be merged.
var suspiciousTLDs = map[string]bool{
	"xyz":   true,
	"top":   true,
	"click": true,
	"shop":  true,
	"link":  true,
	"ru":    true,
	"cn":    true,
	"work":  true,
}

var brandKeywords = []string{
	"google", "paypal", "microsoft", "apple", "amazon",
	"office", "outlook", "bank", "secure", "login",
}

// Features holds the lexical features of a single domain string.
type Features struct {
	Len                  int     `json:"len"`
	DotCount             int     `json:"dotCount"`
	HyphenCount          int     `json:"hyphenCount"`
	DigitCount           int     `json:"digitCount"`
	DigitRatio           float64 `json:"digitRatio"`
	LabelCount           int     `json:"labelCount"`
	SuspiciousTLD        bool    `json:"suspiciousTld"`
	ContainsBrandKeyword bool    `json:"containsBrandKeyword"`
	VowelRatio           float64 `json:"vowelRatio"`
}

// ComputeFeatures derives Features from a domain name. The input is
// lower-cased first; an empty domain yields zero counts and zero ratios.
func ComputeFeatures(domain string) Features {
	d := strings.ToLower(domain)

	var f Features
	f.Len = len(d)
	f.DotCount = strings.Count(d, ".")
	f.HyphenCount = strings.Count(d, "-")

	vowelCount := 0
	for i := 0; i < len(d); i++ {
		switch d[i] {
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			f.DigitCount++
		case 'a', 'e', 'i', 'o', 'u':
			vowelCount++
		}
	}
	if f.Len > 0 {
		f.DigitRatio = float64(f.DigitCount) / float64(f.Len)
		f.VowelRatio = float64(vowelCount) / float64(f.Len)
	}

	if d != "" {
		labels := strings.Split(d, ".")
		f.LabelCount = len(labels)
		tld := labels[len(labels)-1]
		f.SuspiciousTLD = suspiciousTLDs[tld]
	}

	for _, k := range brandKeywords {
		if strings.Contains(d, k) {
			f.ContainsBrandKeyword = true
			break
		}
	}

	return f
}

// LegitimacyScore maps a domain to a probability in (0,1) that it is not
// malicious; higher means more likely legitimate. The linear score starts at
// a +0.5 baseline ("probably OK") and each term below is additive, so the
// order of application does not matter.
func LegitimacyScore(domain string) float64 {
	f := ComputeFeatures(domain)

	z := 0.5
	if f.SuspiciousTLD {
		z -= 2.0
	}

	z -= 1.0 * f.DigitRatio
	z -= 0.3 * float64(f.HyphenCount)

	shortLen := f.Len
	if shortLen > 20 {
		shortLen = 20
	}
	z += 0.05 * float64(shortLen)
	if f.Len > 30 {
		z -= 0.05 * float64(f.Len-30)
	}

	if f.LabelCount > 4 {
		z -= 0.4 * float64(f.LabelCount-4)
	}

	if f.ContainsBrandKeyword {
		z += 0.4
	}

	return sigmoid(z)
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
