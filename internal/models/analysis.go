// internal/models/analysis.go
package models

// RiskLevel is the discretized trust score shown to the user.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// SuspiciousLink is a link that triggered at least one per-link heuristic.
type SuspiciousLink struct {
	Href    string   `json:"href"`
	Domain  string   `json:"domain"`
	Reasons []string `json:"reasons"`
}

// AnalysisResult is the verdict for a whole message. TrustScore and
// RiskLevel are a deterministic pure function of the EmailRecord and the
// static lookup tables; Error is set only when the engine itself failed, in
// which case the other fields hold their zero values.
type AnalysisResult struct {
	TrustScore      float64          `json:"trustScore"`
	RiskLevel       RiskLevel        `json:"riskLevel"`
	Reasons         []string         `json:"reasons"`
	SuspiciousLinks []SuspiciousLink `json:"suspiciousLinks"`
	Error           string           `json:"error,omitempty"`
}
