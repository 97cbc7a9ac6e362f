package orchestrator

import (
	"context"
	"time"

	"github.com/lumenstage/verifier/internal/agent"
	"github.com/lumenstage/verifier/internal/domain"
)

// Runner is the coordinator surface a phase runs its agents through
type Runner interface {
	RunParallel(ctx context.Context, vctx domain.Context, maxConcurrency int) []*domain.Report
	Summary() domain.Summary
	Agents() []*agent.Agent
}

// Phase is a named, ordered group of verification agents executed through
// one coordinator, with required/dependency metadata. A phase's status and
// report list are owned by the orchestrator running it.
type Phase struct {
	Name        string
	Order       int
	Required    bool
	DependsOn   []string
	Coordinator Runner

	Status     domain.PhaseStatus
	StartedAt  time.Time
	FinishedAt time.Time
	Reports    []*domain.Report
}

// NewPhase creates a pending phase
func NewPhase(name string, order int, required bool, coord Runner, dependsOn ...string) *Phase {
	return &Phase{
		Name:        name,
		Order:       order,
		Required:    required,
		DependsOn:   dependsOn,
		Coordinator: coord,
		Status:      domain.PhasePending,
	}
}

// Duration returns how long the phase ran, zero if it never started
func (p *Phase) Duration() time.Duration {
	if p.StartedAt.IsZero() || p.FinishedAt.IsZero() {
		return 0
	}
	return p.FinishedAt.Sub(p.StartedAt)
}
