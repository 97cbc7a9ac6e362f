// Package checks holds the built-in catalog of verification checks and the
// builder that assembles them into a registry and the default phase
// pipeline. Registration happens in one place so the type table is visible
// and testable.
package checks

import (
	"fmt"
	"time"

	"github.com/lumenstage/verifier/internal/agent"
	"github.com/lumenstage/verifier/internal/coordinator"
	"github.com/lumenstage/verifier/internal/domain"
	"github.com/lumenstage/verifier/internal/orchestrator"
	"github.com/lumenstage/verifier/internal/registry"
)

// Def describes one check type in the catalog
type Def struct {
	Type     string
	Name     string
	Phase    string
	Priority domain.Priority
	Timeout  time.Duration
	Execute  agent.ExecuteFunc
}

// Default phase names, in pipeline order
const (
	PhaseResearch     = "research"
	PhaseEngineering  = "engineering"
	PhaseTesting      = "testing"
	PhaseReadiness    = "production_readiness"
	PhaseVerification = "verification"
)

// phaseOrder maps phase name to pipeline position
var phaseOrder = map[string]int{
	PhaseResearch:     1,
	PhaseEngineering:  2,
	PhaseTesting:      3,
	PhaseReadiness:    4,
	PhaseVerification: 5,
}

// PhaseNames returns the default phase names in pipeline order
func PhaseNames() []string {
	return []string{PhaseResearch, PhaseEngineering, PhaseTesting, PhaseReadiness, PhaseVerification}
}

// Catalog returns the built-in check definitions
func Catalog() []Def {
	return []Def{
		{Type: "dependency_audit", Name: "dependency audit", Phase: PhaseResearch, Priority: domain.PriorityCritical, Timeout: 120 * time.Second, Execute: dependencyAudit},
		{Type: "license_scan", Name: "license scan", Phase: PhaseResearch, Priority: domain.PriorityHigh, Timeout: 60 * time.Second, Execute: licenseScan},
		{Type: "api_surface_review", Name: "API surface review", Phase: PhaseResearch, Priority: domain.PriorityMedium, Timeout: 60 * time.Second, Execute: apiSurfaceReview},

		{Type: "code_quality_scan", Name: "code quality scan", Phase: PhaseEngineering, Priority: domain.PriorityCritical, Timeout: 180 * time.Second, Execute: codeQualityScan},
		{Type: "asset_pipeline_check", Name: "asset pipeline check", Phase: PhaseEngineering, Priority: domain.PriorityHigh, Timeout: 120 * time.Second, Execute: assetPipelineCheck},
		{Type: "config_drift_check", Name: "config drift check", Phase: PhaseEngineering, Priority: domain.PriorityMedium, Timeout: 60 * time.Second, Execute: configDriftCheck},
		{Type: "doc_coverage_check", Name: "doc coverage check", Phase: PhaseEngineering, Priority: domain.PriorityLow, Timeout: 60 * time.Second, Execute: docCoverageCheck},

		{Type: "unit_suite_check", Name: "unit suite", Phase: PhaseTesting, Priority: domain.PriorityCritical, Timeout: 300 * time.Second, Execute: unitSuiteCheck},
		{Type: "integration_smoke", Name: "integration smoke", Phase: PhaseTesting, Priority: domain.PriorityHigh, Timeout: 300 * time.Second, Execute: integrationSmoke},
		{Type: "browser_matrix_check", Name: "browser matrix", Phase: PhaseTesting, Priority: domain.PriorityMedium, Timeout: 600 * time.Second, Execute: browserMatrixCheck},

		{Type: "secret_exposure_scan", Name: "secret exposure scan", Phase: PhaseReadiness, Priority: domain.PriorityCritical, Timeout: 120 * time.Second, Execute: secretExposureScan},
		{Type: "perf_budget_check", Name: "performance budgets", Phase: PhaseReadiness, Priority: domain.PriorityHigh, Timeout: 300 * time.Second, Execute: perfBudgetCheck},
		{Type: "telemetry_check", Name: "telemetry check", Phase: PhaseReadiness, Priority: domain.PriorityLow, Timeout: 60 * time.Second, Execute: telemetryCheck},

		{Type: "render_proof_check", Name: "render proof", Phase: PhaseVerification, Priority: domain.PriorityCritical, Timeout: 600 * time.Second, Execute: renderProofCheck},
		{Type: "brand_consistency_check", Name: "brand consistency", Phase: PhaseVerification, Priority: domain.PriorityHigh, Timeout: 120 * time.Second, Execute: brandConsistencyCheck},
		{Type: "archive_integrity_check", Name: "archive integrity", Phase: PhaseVerification, Priority: domain.PriorityBackground, Timeout: 300 * time.Second, Execute: archiveIntegrityCheck},
	}
}

// NewRegistry builds a registry with every catalog constructor registered
func NewRegistry() *registry.Registry {
	reg := registry.New()
	for _, def := range Catalog() {
		def := def
		reg.Register(def.Type, func(id string) *agent.Agent {
			return agent.New(agent.Spec{
				ID:       id,
				Name:     def.Name,
				Type:     def.Type,
				Priority: def.Priority,
				Timeout:  def.Timeout,
			}, def.Execute)
		})
	}
	return reg
}

// BuildPhases instantiates the full default pipeline from the registry:
// research → engineering → testing → production readiness → verification,
// each phase required and depending on the previous one.
func BuildPhases(reg *registry.Registry) []*orchestrator.Phase {
	byPhase := make(map[string]*coordinator.Coordinator, len(phaseOrder))
	for _, name := range PhaseNames() {
		byPhase[name] = coordinator.New()
	}

	counts := make(map[string]int)
	for _, def := range Catalog() {
		counts[def.Type]++
		id := fmt.Sprintf("%s-%d", def.Type, counts[def.Type])
		a, ok := reg.Create(def.Type, id)
		if !ok {
			continue
		}
		byPhase[def.Phase].Add(a)
	}

	phases := make([]*orchestrator.Phase, 0, len(phaseOrder))
	var previous string
	for _, name := range PhaseNames() {
		var deps []string
		if previous != "" {
			deps = []string{previous}
		}
		phases = append(phases, orchestrator.NewPhase(name, phaseOrder[name], true, byPhase[name], deps...))
		previous = name
	}
	return phases
}
