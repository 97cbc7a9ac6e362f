package manifest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lumenstage/verifier/internal/checks"
	"github.com/lumenstage/verifier/internal/domain"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const validManifest = `
name: release-gate
phases:
  - name: fast-gate
    order: 1
    required: true
    checks:
      - type: unit_suite_check
        priority: critical
        timeout_seconds: 90
      - type: secret_exposure_scan
  - name: deep-gate
    order: 2
    required: false
    depends_on: [fast-gate]
    checks:
      - type: render_proof_check
        id: proof-main
`

func TestLoad_Valid(t *testing.T) {
	m, err := Load(writeManifest(t, validManifest))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if m.Name != "release-gate" {
		t.Errorf("Name = %q, want release-gate", m.Name)
	}
	if len(m.Phases) != 2 {
		t.Fatalf("got %d phases, want 2", len(m.Phases))
	}
	if m.Phases[1].DependsOn[0] != "fast-gate" {
		t.Errorf("DependsOn = %v, want [fast-gate]", m.Phases[1].DependsOn)
	}
}

func TestLoad_UndeclaredDependency(t *testing.T) {
	_, err := Load(writeManifest(t, `
phases:
  - name: a
    depends_on: [ghost]
    checks:
      - type: unit_suite_check
`))
	if err == nil {
		t.Fatal("want error for dependency on undeclared phase")
	}
}

func TestLoad_EmptyPhase(t *testing.T) {
	_, err := Load(writeManifest(t, `
phases:
  - name: a
    checks: []
`))
	if err == nil {
		t.Fatal("want error for phase without checks")
	}
}

func TestBuildPhases(t *testing.T) {
	m, err := Load(writeManifest(t, validManifest))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	phases := m.BuildPhases(checks.NewRegistry())
	if len(phases) != 2 {
		t.Fatalf("got %d phases, want 2", len(phases))
	}

	fast := phases[0]
	if !fast.Required {
		t.Error("fast-gate should be required")
	}
	agents := fast.Coordinator.Agents()
	if len(agents) != 2 {
		t.Fatalf("fast-gate has %d agents, want 2", len(agents))
	}
	if agents[0].Priority != domain.PriorityCritical {
		t.Errorf("priority override not applied: %v", agents[0].Priority)
	}
	if agents[0].Timeout != 90*time.Second {
		t.Errorf("timeout override not applied: %v", agents[0].Timeout)
	}

	deep := phases[1]
	if deep.Coordinator.Agents()[0].ID != "proof-main" {
		t.Errorf("explicit check id not applied: %q", deep.Coordinator.Agents()[0].ID)
	}
}

func TestBuildPhases_SkipsUnknownTypes(t *testing.T) {
	m := &Manifest{
		Name: "m",
		Phases: []PhaseSpec{{
			Name: "p",
			Checks: []CheckSpec{
				{Type: "unit_suite_check"},
				{Type: "nonexistent_check"},
			},
		}},
	}

	phases := m.BuildPhases(checks.NewRegistry())
	if got := len(phases[0].Coordinator.Agents()); got != 1 {
		t.Errorf("got %d agents, want 1 (unknown type skipped, not an error)", got)
	}
}
