// Package coordinator runs a set of verification agents under one of three
// execution modes (sequential, bounded parallel, hybrid priority groups) and
// aggregates their reports into a summary.
package coordinator

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/lumenstage/verifier/internal/agent"
	"github.com/lumenstage/verifier/internal/domain"
)

// Coordinator owns an ordered list of agents and, after a run, the resulting
// reports. The reports list is written only by the coordinator itself; each
// agent writes only its own slot.
type Coordinator struct {
	mu      sync.Mutex
	agents  []*agent.Agent
	reports []*domain.Report
}

// New creates a coordinator over the given agents
func New(agents ...*agent.Agent) *Coordinator {
	return &Coordinator{agents: agents}
}

// Add appends an agent to the run list
func (c *Coordinator) Add(a *agent.Agent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.agents = append(c.agents, a)
}

// Agents returns a snapshot of the agent list
func (c *Coordinator) Agents() []*agent.Agent {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*agent.Agent, len(c.agents))
	copy(out, c.agents)
	return out
}

// Reports returns the reports from the most recent run
func (c *Coordinator) Reports() []*domain.Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*domain.Report, len(c.reports))
	copy(out, c.reports)
	return out
}

func (c *Coordinator) setReports(reports []*domain.Report) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reports = reports
}

// RunSequential runs every agent one at a time in ascending priority order,
// ties keeping insertion order. Agents reporting critical findings are
// logged but do not stop the run; sequential mode is best-effort.
func (c *Coordinator) RunSequential(ctx context.Context, vctx domain.Context) []*domain.Report {
	agents := c.Agents()
	sorted := make([]*agent.Agent, len(agents))
	copy(sorted, agents)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	reports := make([]*domain.Report, 0, len(sorted))
	for _, a := range sorted {
		report := c.runOne(ctx, vctx, a)
		if report.Metrics.CriticalCount > 0 {
			log.Printf("agent %s reported %d critical findings, continuing", a.Name, report.Metrics.CriticalCount)
		}
		reports = append(reports, report)
	}

	c.setReports(reports)
	return reports
}

// RunParallel runs all agents concurrently behind an admission gate of size
// maxConcurrency: no more than maxConcurrency agents are ever past the start
// of their execution at once. Results are index-aligned with the agent list,
// not completion-ordered. RunParallel never fails; an agent that cannot run
// yields a synthetic failed report in its slot.
func (c *Coordinator) RunParallel(ctx context.Context, vctx domain.Context, maxConcurrency int) []*domain.Report {
	agents := c.Agents()
	reports := make([]*domain.Report, len(agents))

	if maxConcurrency <= 0 {
		maxConcurrency = len(agents)
	}
	if maxConcurrency == 0 {
		c.setReports(reports)
		return reports
	}

	g := new(errgroup.Group)
	g.SetLimit(maxConcurrency)

	for i, a := range agents {
		i, a := i, a
		g.Go(func() error {
			reports[i] = c.runOne(ctx, vctx, a)
			return nil
		})
	}
	_ = g.Wait()

	c.setReports(reports)
	return reports
}

// RunHybrid runs groups of agents one group after another, parallel within
// each group. If no explicit groups of agent ids are given, agents are
// grouped by priority value and groups run ascending, most critical first.
// Group order is preserved in the aggregated reports.
func (c *Coordinator) RunHybrid(ctx context.Context, vctx domain.Context, maxConcurrency int, groups [][]string) []*domain.Report {
	agents := c.Agents()
	if len(groups) == 0 {
		groups = priorityGroups(agents)
	}

	byID := make(map[string]*agent.Agent, len(agents))
	for _, a := range agents {
		byID[a.ID] = a
	}

	var all []*domain.Report
	for _, group := range groups {
		members := make([]*agent.Agent, 0, len(group))
		for _, id := range group {
			if a, ok := byID[id]; ok {
				members = append(members, a)
			} else {
				log.Printf("hybrid group references unknown agent %q, skipping", id)
			}
		}
		if len(members) == 0 {
			continue
		}
		sub := New(members...)
		all = append(all, sub.RunParallel(ctx, vctx, maxConcurrency)...)
	}

	c.setReports(all)
	return all
}

// Summary folds the reports of the most recent run into an aggregate
func (c *Coordinator) Summary() domain.Summary {
	return domain.Summarize(c.Reports())
}

// runOne executes a single agent and converts anything unexpected into a
// synthetic failed report, so no failure crosses the coordinator boundary.
func (c *Coordinator) runOne(ctx context.Context, vctx domain.Context, a *agent.Agent) (report *domain.Report) {
	if a == nil {
		return &domain.Report{
			Status:  domain.AgentFailed,
			Summary: "no agent instance",
		}
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("agent %s (%s) raised: %v", a.Name, a.ID, r)
			report = syntheticFailure(a, fmt.Sprintf("%s raised: %v", a.Name, r))
		}
	}()

	report = a.Run(ctx, vctx)
	if report == nil {
		report = syntheticFailure(a, fmt.Sprintf("%s returned no report", a.Name))
	}
	return report
}

func syntheticFailure(a *agent.Agent, summary string) *domain.Report {
	return &domain.Report{
		AgentID:   a.ID,
		AgentName: a.Name,
		AgentType: a.Type,
		Status:    domain.AgentFailed,
		Summary:   summary,
	}
}

// priorityGroups partitions agents into id groups by priority value,
// ascending (critical first)
func priorityGroups(agents []*agent.Agent) [][]string {
	byPrio := make(map[domain.Priority][]string)
	for _, a := range agents {
		byPrio[a.Priority] = append(byPrio[a.Priority], a.ID)
	}

	prios := make([]domain.Priority, 0, len(byPrio))
	for p := range byPrio {
		prios = append(prios, p)
	}
	sort.Slice(prios, func(i, j int) bool { return prios[i] < prios[j] })

	groups := make([][]string, 0, len(prios))
	for _, p := range prios {
		groups = append(groups, byPrio[p])
	}
	return groups
}
