//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/lumenstage/verifier/internal/checks"
	"github.com/lumenstage/verifier/internal/orchestrator"
	"github.com/lumenstage/verifier/internal/reportstore"
)

// TestCommissionFlow_RunToStore tests the full pipeline:
// catalog -> registry -> phases -> commission -> reportstore.
func TestCommissionFlow_RunToStore(t *testing.T) {
	projectDir := TempProjectDir(t)
	dbPath := TempDBPath(t)

	reg := checks.NewRegistry()
	phases := checks.BuildPhases(reg)
	if len(phases) != 5 {
		t.Fatalf("phase count = %d, want 5", len(phases))
	}

	orch := orchestrator.New(orchestrator.Config{
		ProjectPath:    projectDir,
		MaxConcurrency: 4,
	}, phases...)

	report := orch.RunCommission(context.Background(), nil, nil)
	if report.OverallResult != "PASSED" {
		t.Fatalf("OverallResult = %q, want PASSED", report.OverallResult)
	}
	if len(report.Phases) != 5 {
		t.Errorf("report phase count = %d, want 5", len(report.Phases))
	}
	if report.AgentsFailed != 0 {
		t.Errorf("AgentsFailed = %d, want 0", report.AgentsFailed)
	}

	store, err := reportstore.New(dbPath)
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	defer store.Close()

	if err := store.SaveReport(report); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	got, err := store.GetReport(report.ID)
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if got.ID != report.ID {
		t.Errorf("round-trip ID = %q, want %q", got.ID, report.ID)
	}
	if got.OverallResult != report.OverallResult {
		t.Errorf("round-trip OverallResult = %q, want %q", got.OverallResult, report.OverallResult)
	}

	runs, err := store.ListRecent(10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != report.ID {
		t.Errorf("ListRecent = %+v, want one run %s", runs, report.ID)
	}
}

// TestQuickCheckFlow runs the reduced health check against a real project dir
func TestQuickCheckFlow(t *testing.T) {
	projectDir := TempProjectDir(t)

	reg := checks.NewRegistry()
	orch := orchestrator.New(orchestrator.Config{
		ProjectPath:    projectDir,
		MaxConcurrency: 4,
	}, checks.BuildPhases(reg)...)

	result := orch.RunQuickCheck(context.Background(), nil)
	if result.Status != "healthy" {
		t.Errorf("Status = %q, want healthy", result.Status)
	}
	if len(result.Checks) == 0 {
		t.Error("expected at least one quick check entry")
	}
	for _, entry := range result.Checks {
		if entry.Status == "error" {
			t.Errorf("check %s/%s errored: %s", entry.Phase, entry.Agent, entry.Summary)
		}
	}
}
