// Package render formats commission output for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lumenstage/verifier/internal/domain"
	"github.com/lumenstage/verifier/internal/orchestrator"
	"github.com/lumenstage/verifier/internal/reportstore"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func statusStyle(s domain.CommissionStatus) lipgloss.Style {
	switch s {
	case domain.CommissionPassed:
		return passStyle
	case domain.CommissionFailedHigh:
		return warnStyle
	case domain.CommissionFailedCritical:
		return failStyle
	default:
		return dimStyle
	}
}

// Commission renders a full commission report
func Commission(report *domain.CommissionReport) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Commission %s", report.ID)))
	b.WriteString("\n")
	b.WriteString(statusStyle(report.Status).Render(strings.ToUpper(string(report.Status))))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %.1fs", report.DurationSeconds)))
	b.WriteString("\n\n")

	for _, p := range report.Phases {
		marker := passStyle.Render("✓")
		if p.Status == domain.PhaseFailed {
			marker = failStyle.Render("✗")
		} else if p.Summary.OverallStatus != "PASSED" {
			marker = warnStyle.Render("!")
		}
		b.WriteString(fmt.Sprintf("%s %-22s", marker, p.Name))
		if p.Error != "" {
			b.WriteString(failStyle.Render(p.Error))
		} else {
			b.WriteString(fmt.Sprintf("%d/%d agents passed", p.Summary.AgentsPassed, p.Summary.TotalAgents))
			if n := p.Summary.CriticalFindings + p.Summary.HighFindings; n > 0 {
				b.WriteString(warnStyle.Render(fmt.Sprintf("  %d critical/high findings", n)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Findings: %s %s %s %s %s\n",
		failStyle.Render(fmt.Sprintf("%d critical", report.CriticalFindings)),
		warnStyle.Render(fmt.Sprintf("%d high", report.HighFindings)),
		fmt.Sprintf("%d medium", report.MediumFindings),
		dimStyle.Render(fmt.Sprintf("%d low", report.LowFindings)),
		dimStyle.Render(fmt.Sprintf("%d info", report.InfoFindings)),
	))
	b.WriteString(fmt.Sprintf("Pass rate: %.1f%%\n\n", report.PassRate()*100))

	for _, rec := range report.Recommendations {
		b.WriteString(dimStyle.Render("→ "))
		b.WriteString(rec)
		b.WriteString("\n")
	}

	return b.String()
}

// QuickCheck renders a quick health check result
func QuickCheck(result *orchestrator.QuickCheckResult) string {
	var b strings.Builder

	header := passStyle.Render("HEALTHY")
	if result.Status != "healthy" {
		header = failStyle.Render("UNHEALTHY")
	}
	b.WriteString(titleStyle.Render("Quick check: "))
	b.WriteString(header)
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %.1fs", result.DurationSeconds)))
	b.WriteString("\n\n")

	for _, c := range result.Checks {
		marker := passStyle.Render("✓")
		switch c.Status {
		case "failed":
			marker = failStyle.Render("✗")
		case "error":
			marker = warnStyle.Render("?")
		}
		b.WriteString(fmt.Sprintf("%s %s/%s", marker, c.Phase, c.Agent))
		if c.Status != "passed" && c.Summary != "" {
			b.WriteString(dimStyle.Render("  " + c.Summary))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// History renders the recent commission run listing
func History(runs []reportstore.RunSummary) string {
	if len(runs) == 0 {
		return dimStyle.Render("no commission runs recorded") + "\n"
	}

	var b strings.Builder
	for _, r := range runs {
		b.WriteString(statusStyle(r.Status).Render(fmt.Sprintf("%-16s", string(r.Status))))
		b.WriteString(fmt.Sprintf("%s  %s  %d/%d passed  %.1fs\n",
			r.StartedAt.Format("2006-01-02 15:04"),
			r.ID,
			r.AgentsPassed, r.AgentsPassed+r.AgentsFailed,
			r.DurationSeconds))
	}
	return b.String()
}
