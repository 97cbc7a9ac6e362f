package checks

import (
	"context"
	"testing"

	"github.com/lumenstage/verifier/internal/domain"
	"github.com/lumenstage/verifier/internal/orchestrator"
)

func TestCatalog_TypesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, def := range Catalog() {
		if seen[def.Type] {
			t.Errorf("duplicate check type %q", def.Type)
		}
		seen[def.Type] = true
		if def.Execute == nil {
			t.Errorf("check %q has no execute body", def.Type)
		}
		if _, ok := phaseOrder[def.Phase]; !ok {
			t.Errorf("check %q references unknown phase %q", def.Type, def.Phase)
		}
	}
}

func TestNewRegistry_AllTypesRegistered(t *testing.T) {
	reg := NewRegistry()
	if reg.Count() != len(Catalog()) {
		t.Errorf("registered %d types, want %d", reg.Count(), len(Catalog()))
	}

	a, ok := reg.Create("dependency_audit", "da-1")
	if !ok {
		t.Fatal("dependency_audit should be registered")
	}
	if a.Priority != domain.PriorityCritical {
		t.Errorf("Priority = %v, want critical", a.Priority)
	}

	if _, ok := reg.Create("nonexistent_check", "x"); ok {
		t.Error("unknown check type must return no instance")
	}
}

func TestBuildPhases_Pipeline(t *testing.T) {
	phases := BuildPhases(NewRegistry())

	if len(phases) != 5 {
		t.Fatalf("got %d phases, want 5", len(phases))
	}
	names := PhaseNames()
	for i, p := range phases {
		if p.Name != names[i] {
			t.Errorf("phases[%d] = %q, want %q", i, p.Name, names[i])
		}
		if !p.Required {
			t.Errorf("phase %q should be required", p.Name)
		}
		if i > 0 {
			if len(p.DependsOn) != 1 || p.DependsOn[0] != names[i-1] {
				t.Errorf("phase %q depends on %v, want [%s]", p.Name, p.DependsOn, names[i-1])
			}
		}
		if len(p.Coordinator.Agents()) == 0 {
			t.Errorf("phase %q has no agents", p.Name)
		}
	}
}

func TestDefaultPipeline_FullRunPasses(t *testing.T) {
	phases := BuildPhases(NewRegistry())
	o := orchestrator.New(orchestrator.Config{ProjectPath: t.TempDir(), MaxConcurrency: 4}, phases...)

	report := o.RunCommission(context.Background(), nil, nil)

	if report.Status != domain.CommissionPassed {
		t.Errorf("Status = %q, want %q", report.Status, domain.CommissionPassed)
	}
	if len(report.Phases) != 5 {
		t.Fatalf("got %d phase results, want 5", len(report.Phases))
	}
	if report.AgentsFailed != 0 {
		t.Errorf("AgentsFailed = %d, want 0", report.AgentsFailed)
	}
	if report.TotalAgents() != len(Catalog()) {
		t.Errorf("TotalAgents = %d, want %d", report.TotalAgents(), len(Catalog()))
	}
}

func TestDefaultPipeline_QuickCheck(t *testing.T) {
	phases := BuildPhases(NewRegistry())
	o := orchestrator.New(orchestrator.Config{ProjectPath: t.TempDir()}, phases...)

	result := o.RunQuickCheck(context.Background(), nil)

	if result.Status != "healthy" {
		t.Errorf("Status = %q, want healthy", result.Status)
	}
	if len(result.Checks) > 5*3 {
		t.Errorf("got %d checks, want at most 15", len(result.Checks))
	}
	if len(result.Checks) == 0 {
		t.Error("quick check should select at least one agent")
	}
}
