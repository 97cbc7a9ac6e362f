package orchestrator

import (
	"fmt"

	"github.com/lumenstage/verifier/internal/domain"
)

// passRateTarget is the minimum acceptable fraction of passing agents
const passRateTarget = 0.9

// Recommendations derives next-step guidance from a commission's totals.
// When nothing needs attention it returns the single release recommendation.
func Recommendations(c *domain.CommissionReport) []string {
	var recs []string

	if c.CriticalFindings > 0 {
		recs = append(recs, fmt.Sprintf("Resolve %d critical findings before any release", c.CriticalFindings))
	}
	if c.HighFindings > 0 {
		recs = append(recs, fmt.Sprintf("Resolve %d high severity findings before release", c.HighFindings))
	}
	if c.MediumFindings > 0 {
		recs = append(recs, fmt.Sprintf("Schedule fixes for %d medium severity findings", c.MediumFindings))
	}
	if c.AgentsFailed > 0 {
		recs = append(recs, fmt.Sprintf("Investigate %d failed verification agents", c.AgentsFailed))
	}
	if c.TotalAgents() > 0 && c.PassRate() < passRateTarget {
		recs = append(recs, fmt.Sprintf("Pass rate %.1f%% is below the %.0f%% target", c.PassRate()*100, passRateTarget*100))
	}

	if len(recs) == 0 {
		recs = append(recs, "All verifications passed - ready for production")
	}
	return recs
}
