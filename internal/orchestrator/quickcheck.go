package orchestrator

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/lumenstage/verifier/internal/agent"
	"github.com/lumenstage/verifier/internal/domain"
)

// quickChecksPerPhase caps how many agents a phase contributes to a quick check
const quickChecksPerPhase = 3

// QuickCheckEntry is the outcome of one agent in a quick check
type QuickCheckEntry struct {
	Phase   string `json:"phase"`
	Agent   string `json:"agent"`
	Status  string `json:"status"` // "passed" | "failed" | "error"
	Summary string `json:"summary,omitempty"`
}

// QuickCheckResult is the reduced health signal produced by RunQuickCheck
type QuickCheckResult struct {
	Status          string            `json:"status"` // "healthy" | "unhealthy"
	Checks          []QuickCheckEntry `json:"checks"`
	DurationSeconds float64           `json:"duration_seconds"`
}

// RunQuickCheck runs at most the first three critical/high priority agents
// of every phase, each individually rather than through the phase's
// coordinator. An agent that raises is recorded as an "error" entry and does
// not abort the remaining checks. The overall status is "unhealthy" iff any
// entry failed or errored.
func (o *Orchestrator) RunQuickCheck(ctx context.Context, overrides domain.Context) *QuickCheckResult {
	start := time.Now()
	vctx := domain.Context{
		domain.ContextProjectPath:  o.config.ProjectPath,
		domain.ContextCommissionID: uuid.New().String(),
	}.Merge(overrides)

	result := &QuickCheckResult{Status: "healthy"}

	for _, p := range o.phases {
		if p.Coordinator == nil {
			continue
		}
		selected := 0
		for _, a := range p.Coordinator.Agents() {
			if selected >= quickChecksPerPhase {
				break
			}
			if a == nil || a.Priority > domain.PriorityHigh {
				continue
			}
			selected++

			entry := o.quickCheckOne(ctx, vctx, p.Name, a)
			if entry.Status != "passed" {
				result.Status = "unhealthy"
			}
			result.Checks = append(result.Checks, entry)
		}
	}

	result.DurationSeconds = time.Since(start).Seconds()
	return result
}

func (o *Orchestrator) quickCheckOne(ctx context.Context, vctx domain.Context, phaseName string, a *agent.Agent) (entry QuickCheckEntry) {
	entry = QuickCheckEntry{Phase: phaseName, Agent: a.Name}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("quick check %s/%s raised: %v", phaseName, a.Name, r)
			entry.Status = "error"
			entry.Summary = fmt.Sprintf("%v", r)
		}
	}()

	report := a.Run(ctx, vctx)
	entry.Summary = report.Summary
	if report.Status == domain.AgentFailed || !report.Passed() {
		entry.Status = "failed"
	} else {
		entry.Status = "passed"
	}
	return entry
}
