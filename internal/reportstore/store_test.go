package reportstore

import (
	"path/filepath"
	"testing"

	"github.com/lumenstage/verifier/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleReport(id string) *domain.CommissionReport {
	c := domain.NewCommissionReport(id)
	c.AddPhase(domain.PhaseResult{
		Name:   "research",
		Status: domain.PhaseCompleted,
		Summary: domain.Summary{
			TotalAgents: 3, AgentsPassed: 2, AgentsFailed: 1,
			CriticalFindings: 1, HighFindings: 2,
		},
	})
	c.Finalize()
	return c
}

func TestStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	report := sampleReport("c-1")

	if err := store.SaveReport(report); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	got, err := store.GetReport("c-1")
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if got.ID != "c-1" {
		t.Errorf("ID = %q, want c-1", got.ID)
	}
	if got.CriticalFindings != 1 || got.HighFindings != 2 {
		t.Errorf("critical/high = %d/%d, want 1/2", got.CriticalFindings, got.HighFindings)
	}
	if got.Status != domain.CommissionFailedCritical {
		t.Errorf("Status = %q, want %q", got.Status, domain.CommissionFailedCritical)
	}
	if len(got.Phases) != 1 {
		t.Errorf("got %d phases, want 1", len(got.Phases))
	}
}

func TestStore_SaveIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	report := sampleReport("c-2")

	if err := store.SaveReport(report); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := store.SaveReport(report); err != nil {
		t.Fatalf("second save: %v", err)
	}

	runs, err := store.ListRecent(10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("got %d runs, want 1 (upsert, not duplicate)", len(runs))
	}
}

func TestStore_ListRecent(t *testing.T) {
	store := newTestStore(t)
	for _, id := range []string{"c-a", "c-b", "c-c"} {
		if err := store.SaveReport(sampleReport(id)); err != nil {
			t.Fatalf("SaveReport(%s): %v", id, err)
		}
	}

	runs, err := store.ListRecent(2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2 (limited)", len(runs))
	}
	if runs[0].OverallResult != "FAILED" {
		t.Errorf("OverallResult = %q, want FAILED", runs[0].OverallResult)
	}
}

func TestStore_GetMissing(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.GetReport("nope"); err == nil {
		t.Error("want error for missing commission")
	}
}
