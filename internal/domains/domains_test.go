package domains

import (
	"math"
	"testing"
)

func TestComputeFeatures(t *testing.T) {
	tests := []struct {
		domain string
		want   Features
	}{
		{
			domain: "accounts.google.com",
			want: Features{
				Len:                  19,
				DotCount:             2,
				LabelCount:           3,
				ContainsBrandKeyword: true,
				VowelRatio:           7.0 / 19.0,
			},
		},
		{
			domain: "PAYPA1-SECURE.XYZ",
			want: Features{
				Len:                  17,
				DotCount:             1,
				HyphenCount:          1,
				DigitCount:           1,
				DigitRatio:           1.0 / 17.0,
				LabelCount:           2,
				SuspiciousTLD:        true,
				ContainsBrandKeyword: true,
				VowelRatio:           5.0 / 17.0,
			},
		},
		{
			domain: "",
			want:   Features{},
		},
	}

	for _, tt := range tests {
		got := ComputeFeatures(tt.domain)
		if got != tt.want {
			t.Fatalf("ComputeFeatures(%q) = %+v, want %+v", tt.domain, got, tt.want)
		}
	}
}

func TestLegitimacyScoreEmptyDomain(t *testing.T) {
	got := LegitimacyScore("")
	want := 1.0 / (1.0 + math.Exp(-0.5))
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("LegitimacyScore(\"\") = %v, want sigmoid(0.5) = %v", got, want)
	}
}

func TestLegitimacyScoreBounds(t *testing.T) {
	for _, d := range []string{"", "a", "x-9.ru", "accounts.google.com", "a.b.c.d.e.f.g.xyz"} {
		score := LegitimacyScore(d)
		if score <= 0 || score >= 1 {
			t.Fatalf("LegitimacyScore(%q) = %v, want value in (0,1)", d, score)
		}
	}
}

func TestSuspiciousTLDLowersScore(t *testing.T) {
	// Same length, same features apart from the TLD.
	pairs := [][2]string{
		{"example.xyz", "example.org"},
		{"foobar.ru", "foobar.io"},
		{"shady.top", "shady.net"},
	}
	for _, p := range pairs {
		bad, good := LegitimacyScore(p[0]), LegitimacyScore(p[1])
		if bad >= good {
			t.Fatalf("expected %q (%v) to score strictly below %q (%v)", p[0], bad, p[1], good)
		}
	}
}

func TestScoreMonotonicInDigitRatio(t *testing.T) {
	// Fixed length and TLD, increasing digit count.
	ladder := []string{"abcd.com", "abc1.com", "ab11.com", "a111.com"}
	prev := math.Inf(1)
	for _, d := range ladder {
		score := LegitimacyScore(d)
		if score > prev {
			t.Fatalf("score increased along digit ladder at %q: %v > %v", d, score, prev)
		}
		prev = score
	}
}

func TestScoreMonotonicInHyphenCount(t *testing.T) {
	ladder := []string{"abcdef.com", "ab-def.com", "a--def.com"}
	prev := math.Inf(1)
	for _, d := range ladder {
		score := LegitimacyScore(d)
		if score > prev {
			t.Fatalf("score increased along hyphen ladder at %q: %v > %v", d, score, prev)
		}
		prev = score
	}
}

func TestBrandKeywordRaisesScore(t *testing.T) {
	// paypal vs an equally long non-brand string.
	with, without := LegitimacyScore("paypal.com"), LegitimacyScore("paypap.com")
	if with <= without {
		t.Fatalf("brand keyword should raise the score: %v <= %v", with, without)
	}
}

func TestLabelCountPenalty(t *testing.T) {
	// Six labels vs three, comparable length.
	deep := LegitimacyScore("a.b.c.d.e.com")
	flat := LegitimacyScore("abc.defg.com")
	if deep >= flat {
		t.Fatalf("deep label chain should score below flat domain: %v >= %v", deep, flat)
	}
}
