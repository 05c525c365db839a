// handlers/web/verdict.go
package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/config"
	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/handlers/api"
	"github.com/Andrew-Trautzsch/USaP---Email-Phishing-Aid/internal/models"
)

// VerdictHandler renders the phishing banner page for a single message.
type VerdictHandler struct {
	store    *session.Store
	config   *config.Config
	analysis *api.AnalysisHandler
}

func NewVerdictHandler(store *session.Store, config *config.Config, analysis *api.AnalysisHandler) *VerdictHandler {
	return &VerdictHandler{
		store:    store,
		config:   config,
		analysis: analysis,
	}
}

// HandleHome renders the landing page with the message lookup form.
func (h *VerdictHandler) HandleHome(c *fiber.Ctx) error {
	return c.Render("home", fiber.Map{
		"Username": c.Locals("username"),
	})
}

// HandleVerdict fetches, analyzes and renders one message verdict.
func (h *VerdictHandler) HandleVerdict(c *fiber.Ctx) error {
	record, analysis, err := h.analysis.FetchAndAnalyze(c)
	if err != nil {
		if e, ok := err.(*fiber.Error); ok && e.Code == fiber.StatusUnauthorized {
			return c.Redirect("/login")
		}
		return c.Render("error", fiber.Map{
			"Error": "Error analyzing message",
			"Code":  fiber.StatusBadGateway,
		})
	}

	return c.Render("verdict", fiber.Map{
		"Record":   record,
		"Analysis": analysis,
		"Banner":   bannerFor(analysis),
	})
}

type banner struct {
	Label string
	Class string
}

// bannerFor mirrors the banner levels of the message display overlay:
// green for low risk, yellow for medium, red for high or failed analysis.
func bannerFor(analysis models.AnalysisResult) banner {
	if analysis.Error != "" {
		return banner{Label: "Analysis failed", Class: "banner-high"}
	}
	switch analysis.RiskLevel {
	case models.RiskHigh:
		return banner{Label: "High phishing risk", Class: "banner-high"}
	case models.RiskMedium:
		return banner{Label: "Possible phishing", Class: "banner-medium"}
	default:
		return banner{Label: "Message looks safe", Class: "banner-low"}
	}
}
