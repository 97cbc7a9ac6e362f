// Package agent implements the verification agent contract: a named unit of
// work with a priority and timeout whose execution always produces a report.
// Failures, timeouts and panics inside an agent are converted into failed
// reports and never propagate to the coordinator running it.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/lumenstage/verifier/internal/domain"
)

// DefaultTimeout applies when a spec does not set one
const DefaultTimeout = 60 * time.Second

// ExecuteFunc is the variant-specific body of an agent. It may add findings
// via the agent and should return a report built with BuildReport. A nil
// report with a nil error is tolerated; the envelope is filled in from the
// accumulated findings.
type ExecuteFunc func(ctx context.Context, a *Agent, vctx domain.Context) (*domain.Report, error)

// StatusObserver is notified synchronously on every status transition.
// Panics inside an observer are recovered and logged; they never abort the
// agent.
type StatusObserver func(a *Agent, old, next domain.AgentStatus)

// Spec describes an agent to be constructed
type Spec struct {
	ID       string
	Name     string
	Type     string
	Priority domain.Priority
	Timeout  time.Duration

	// RetryCount mirrors the commission schema. No retry loop consults it;
	// retries are unimplemented.
	RetryCount int
}

// Agent is one verification task. It is owned by the coordinator that runs
// it: created once per execution and discarded after its report is captured.
type Agent struct {
	ID         string
	Name       string
	Type       string
	Priority   domain.Priority
	Timeout    time.Duration
	RetryCount int

	execute ExecuteFunc

	mu        sync.Mutex
	status    domain.AgentStatus
	findings  []domain.Finding
	metrics   domain.Metrics
	observers []StatusObserver
}

// New creates an agent from a spec and its execute body
func New(spec Spec, execute ExecuteFunc) *Agent {
	timeout := spec.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Agent{
		ID:         spec.ID,
		Name:       spec.Name,
		Type:       spec.Type,
		Priority:   spec.Priority,
		Timeout:    timeout,
		RetryCount: spec.RetryCount,
		execute:    execute,
		status:     domain.AgentIdle,
	}
}

// Status returns the current lifecycle status
func (a *Agent) Status() domain.AgentStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

// Subscribe registers a status observer
func (a *Agent) Subscribe(ob StatusObserver) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.observers = append(a.observers, ob)
}

// AddFinding appends a finding and counts it in the agent's metrics.
// This is the only way findings enter an agent.
func (a *Agent) AddFinding(f domain.Finding) {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.findings = append(a.findings, f)
	a.metrics.CountFinding(f.Severity)
}

// RecordItems adds to the processed/passed/failed item counters
func (a *Agent) RecordItems(processed, passed, failed int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.metrics.ItemsProcessed += processed
	a.metrics.ItemsPassed += passed
	a.metrics.ItemsFailed += failed
}

// Findings returns a snapshot of the accumulated findings
func (a *Agent) Findings() []domain.Finding {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.Finding, len(a.findings))
	copy(out, a.findings)
	return out
}

// Metrics returns a snapshot of the accumulated metrics
func (a *Agent) Metrics() domain.Metrics {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.metrics
}

// BuildReport snapshots the agent's findings and metrics into a report.
// Execute bodies call this to produce their result.
func (a *Agent) BuildReport(summary string, recommendations ...string) *domain.Report {
	a.mu.Lock()
	defer a.mu.Unlock()
	findings := make([]domain.Finding, len(a.findings))
	copy(findings, a.findings)
	return &domain.Report{
		AgentID:         a.ID,
		AgentName:       a.Name,
		AgentType:       a.Type,
		Status:          a.status,
		Metrics:         a.metrics,
		Findings:        findings,
		Summary:         summary,
		Recommendations: recommendations,
	}
}

type execResult struct {
	report *domain.Report
	err    error
}

// Run executes the agent under its timeout and always returns a report.
// Timeout, error and panic are distinct failure paths, each converted into a
// synthetic failed report; nothing is ever raised across the agent boundary.
// End time and duration are recorded regardless of outcome.
func (a *Agent) Run(ctx context.Context, vctx domain.Context) *domain.Report {
	a.setStatus(domain.AgentInitializing)

	a.mu.Lock()
	a.findings = nil
	a.metrics = domain.Metrics{StartTime: time.Now()}
	a.mu.Unlock()

	defer a.recordEnd()

	a.setStatus(domain.AgentRunning)

	runCtx, cancel := context.WithTimeout(ctx, a.Timeout)
	defer cancel()

	done := make(chan execResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- execResult{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		report, err := a.execute(runCtx, a, vctx)
		done <- execResult{report: report, err: err}
	}()

	select {
	case <-runCtx.Done():
		// In-flight work is abandoned; no partial results are collected.
		a.recordEnd()
		a.setStatus(domain.AgentFailed)
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			log.Printf("agent %s (%s) timed out after %s", a.Name, a.ID, a.Timeout)
			return a.BuildReport(fmt.Sprintf("%s timed out after %s", a.Name, a.Timeout))
		}
		log.Printf("agent %s (%s) cancelled: %v", a.Name, a.ID, runCtx.Err())
		return a.BuildReport(fmt.Sprintf("%s cancelled: %v", a.Name, runCtx.Err()))

	case res := <-done:
		a.recordEnd()
		if res.err != nil {
			log.Printf("agent %s (%s) failed: %v", a.Name, a.ID, res.err)
			a.setStatus(domain.AgentFailed)
			return a.BuildReport(fmt.Sprintf("%s failed: %v", a.Name, res.err))
		}
		a.setStatus(domain.AgentCompleted)
		report := res.report
		if report == nil {
			report = a.BuildReport(fmt.Sprintf("%s completed", a.Name))
		}
		report.Status = domain.AgentCompleted
		report.Metrics = a.Metrics()
		return report
	}
}

// recordEnd stamps the end time and duration once; later calls are no-ops
func (a *Agent) recordEnd() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.metrics.EndTime.IsZero() {
		return
	}
	a.metrics.EndTime = time.Now()
	a.metrics.DurationSeconds = a.metrics.EndTime.Sub(a.metrics.StartTime).Seconds()
}

func (a *Agent) setStatus(next domain.AgentStatus) {
	a.mu.Lock()
	old := a.status
	a.status = next
	observers := make([]StatusObserver, len(a.observers))
	copy(observers, a.observers)
	a.mu.Unlock()

	for _, ob := range observers {
		a.notify(ob, old, next)
	}
}

func (a *Agent) notify(ob StatusObserver, old, next domain.AgentStatus) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("agent %s (%s): status observer panicked: %v", a.Name, a.ID, r)
		}
	}()
	ob(a, old, next)
}
