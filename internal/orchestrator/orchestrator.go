// Package orchestrator sequences verification phases into one end-to-end
// commission run and aggregates phase summaries into the top-level report.
package orchestrator

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lumenstage/verifier/internal/domain"
)

// Config configures an orchestrator
type Config struct {
	ProjectPath    string
	MaxConcurrency int
	// ParallelPhases launches every phase concurrently with no dependency
	// enforcement, trading dependency correctness for wall-clock speed.
	ParallelPhases bool
}

// Orchestrator owns an ordered list of phases and runs them into a
// commission report
type Orchestrator struct {
	config Config
	phases []*Phase
}

// New creates an orchestrator over the given phases
func New(config Config, phases ...*Phase) *Orchestrator {
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = 5
	}
	return &Orchestrator{config: config, phases: phases}
}

// Phases returns the configured phases
func (o *Orchestrator) Phases() []*Phase {
	return o.phases
}

// RunCommission executes the selected phases and returns the aggregated
// report. phasesToRun filters by name; nil runs every phase. Caller
// overrides are merged into the shared context without validation.
func (o *Orchestrator) RunCommission(ctx context.Context, overrides domain.Context, phasesToRun []string) *domain.CommissionReport {
	commissionID := uuid.New().String()
	vctx := domain.Context{
		domain.ContextProjectPath:  o.config.ProjectPath,
		domain.ContextCommissionID: commissionID,
	}.Merge(overrides)

	report := domain.NewCommissionReport(commissionID)
	selected := o.selectPhases(phasesToRun)

	log.Printf("commission %s: running %d phases", commissionID, len(selected))

	if o.config.ParallelPhases {
		o.runPhasesParallel(ctx, vctx, selected, report)
	} else {
		o.runPhasesSequential(ctx, vctx, selected, report)
	}

	report.Finalize()
	report.Recommendations = Recommendations(report)
	return report
}

func (o *Orchestrator) selectPhases(names []string) []*Phase {
	selected := o.phases
	if len(names) > 0 {
		wanted := make(map[string]bool, len(names))
		for _, n := range names {
			wanted[n] = true
		}
		selected = nil
		for _, p := range o.phases {
			if wanted[p.Name] {
				selected = append(selected, p)
			}
		}
	}

	ordered := make([]*Phase, len(selected))
	copy(ordered, selected)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})
	return ordered
}

// runPhasesSequential runs phases in ascending order. A phase fails only if
// its coordinator invocation itself raised, not when individual agents
// report findings. A failed required phase halts the sequence; later phases
// are not run at all.
func (o *Orchestrator) runPhasesSequential(ctx context.Context, vctx domain.Context, phases []*Phase, report *domain.CommissionReport) {
	for _, p := range phases {
		result := o.runPhase(ctx, vctx, p)
		report.AddPhase(result)

		if p.Status == domain.PhaseFailed && p.Required {
			log.Printf("required phase %s failed, halting commission", p.Name)
			return
		}
	}
}

// runPhasesParallel launches all phases concurrently. Dependencies between
// phases are not enforced in this mode; results keep the configured phase
// order.
func (o *Orchestrator) runPhasesParallel(ctx context.Context, vctx domain.Context, phases []*Phase, report *domain.CommissionReport) {
	results := make([]domain.PhaseResult, len(phases))

	g := new(errgroup.Group)
	for i, p := range phases {
		i, p := i, p
		g.Go(func() error {
			results[i] = o.runPhase(ctx, vctx, p)
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		report.AddPhase(r)
	}
}

// runPhase executes one phase through its coordinator and converts a raised
// coordinator failure into a failed phase result
func (o *Orchestrator) runPhase(ctx context.Context, vctx domain.Context, p *Phase) domain.PhaseResult {
	p.Status = domain.PhaseRunning
	p.StartedAt = time.Now()

	reports, err := o.invokeCoordinator(ctx, vctx, p)
	p.FinishedAt = time.Now()

	if err != nil {
		log.Printf("phase %s could not run: %v", p.Name, err)
		p.Status = domain.PhaseFailed
		return domain.PhaseResult{
			Name:            p.Name,
			Status:          domain.PhaseFailed,
			DurationSeconds: p.Duration().Seconds(),
			Error:           err.Error(),
		}
	}

	p.Reports = reports
	p.Status = domain.PhaseCompleted
	return domain.PhaseResult{
		Name:            p.Name,
		Status:          domain.PhaseCompleted,
		DurationSeconds: p.Duration().Seconds(),
		Summary:         p.Coordinator.Summary(),
	}
}

func (o *Orchestrator) invokeCoordinator(ctx context.Context, vctx domain.Context, p *Phase) (reports []*domain.Report, err error) {
	if p.Coordinator == nil {
		return nil, fmt.Errorf("phase %s has no coordinator", p.Name)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("coordinator raised: %v", r)
		}
	}()
	return p.Coordinator.RunParallel(ctx, vctx, o.config.MaxConcurrency), nil
}
