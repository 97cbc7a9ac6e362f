package domain

import (
	"encoding/json"
	"testing"
)

func TestPriority_Ordering(t *testing.T) {
	if !(PriorityCritical < PriorityHigh && PriorityHigh < PriorityMedium &&
		PriorityMedium < PriorityLow && PriorityLow < PriorityBackground) {
		t.Error("priority values must ascend from critical to background")
	}
}

func TestParsePriority(t *testing.T) {
	cases := map[string]Priority{
		"critical":   PriorityCritical,
		"high":       PriorityHigh,
		"medium":     PriorityMedium,
		"low":        PriorityLow,
		"background": PriorityBackground,
		"bogus":      PriorityMedium,
	}
	for in, want := range cases {
		if got := ParsePriority(in); got != want {
			t.Errorf("ParsePriority(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestMetrics_CountFinding(t *testing.T) {
	var m Metrics
	m.CountFinding(SeverityCritical)
	m.CountFinding(SeverityHigh)
	m.CountFinding(SeverityHigh)
	m.CountFinding(SeverityInfo)

	if m.FindingsCount != 4 {
		t.Errorf("FindingsCount = %d, want 4", m.FindingsCount)
	}
	sum := m.CriticalCount + m.HighCount + m.MediumCount + m.LowCount + m.InfoCount
	if sum != m.FindingsCount {
		t.Errorf("bucket sum = %d, want %d", sum, m.FindingsCount)
	}
	if m.HighCount != 2 {
		t.Errorf("HighCount = %d, want 2", m.HighCount)
	}
}

func TestReport_Passed(t *testing.T) {
	r := &Report{}
	if !r.Passed() {
		t.Error("report with no findings should pass")
	}

	r.Metrics.CountFinding(SeverityMedium)
	r.Metrics.CountFinding(SeverityLow)
	if !r.Passed() {
		t.Error("medium/low findings should not fail a report")
	}

	r.Metrics.CountFinding(SeverityHigh)
	if r.Passed() {
		t.Error("a high finding should fail the report")
	}
}

func TestSummarize(t *testing.T) {
	reports := []*Report{
		{Metrics: Metrics{DurationSeconds: 1.0}},
		{Metrics: Metrics{DurationSeconds: 2.0}},
	}
	reports[1].Metrics.CountFinding(SeverityCritical)

	s := Summarize(reports)

	if s.TotalAgents != 2 {
		t.Errorf("TotalAgents = %d, want 2", s.TotalAgents)
	}
	if s.AgentsPassed != 1 || s.AgentsFailed != 1 {
		t.Errorf("passed/failed = %d/%d, want 1/1", s.AgentsPassed, s.AgentsFailed)
	}
	if s.PassRate != 0.5 {
		t.Errorf("PassRate = %f, want 0.5", s.PassRate)
	}
	if s.CriticalFindings != 1 {
		t.Errorf("CriticalFindings = %d, want 1", s.CriticalFindings)
	}
	if s.OverallStatus != "FAILED" {
		t.Errorf("OverallStatus = %q, want FAILED", s.OverallStatus)
	}
	if s.TotalDurationSeconds != 3.0 {
		t.Errorf("TotalDurationSeconds = %f, want 3.0", s.TotalDurationSeconds)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.PassRate != 0 {
		t.Errorf("PassRate = %f, want 0 for empty input", s.PassRate)
	}
	if s.OverallStatus != "PASSED" {
		t.Errorf("OverallStatus = %q, want PASSED for empty input", s.OverallStatus)
	}
}

func TestCommissionReport_Totals(t *testing.T) {
	c := NewCommissionReport("test-1")
	c.AddPhase(PhaseResult{
		Name:    "research",
		Status:  PhaseCompleted,
		Summary: Summary{TotalAgents: 3, AgentsPassed: 2, AgentsFailed: 1, HighFindings: 2},
	})
	c.AddPhase(PhaseResult{
		Name:    "engineering",
		Status:  PhaseCompleted,
		Summary: Summary{TotalAgents: 2, AgentsPassed: 2, MediumFindings: 1},
	})

	if c.TotalAgents() != 5 {
		t.Errorf("TotalAgents = %d, want 5", c.TotalAgents())
	}
	if c.AgentsPassed != 4 || c.AgentsFailed != 1 {
		t.Errorf("passed/failed = %d/%d, want 4/1", c.AgentsPassed, c.AgentsFailed)
	}
	if c.HighFindings != 2 || c.MediumFindings != 1 {
		t.Errorf("high/medium = %d/%d, want 2/1", c.HighFindings, c.MediumFindings)
	}

	c.Finalize()
	if c.Status != CommissionFailedHigh {
		t.Errorf("Status = %q, want %q", c.Status, CommissionFailedHigh)
	}
	if c.OverallResult != "FAILED" {
		t.Errorf("OverallResult = %q, want FAILED", c.OverallResult)
	}
}

func TestCommissionReport_FinalizeStatus(t *testing.T) {
	cases := []struct {
		name     string
		critical int
		high     int
		want     CommissionStatus
	}{
		{"passed", 0, 0, CommissionPassed},
		{"failed high", 0, 1, CommissionFailedHigh},
		{"failed critical", 1, 5, CommissionFailedCritical},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCommissionReport("x")
			c.AddPhase(PhaseResult{Summary: Summary{
				CriticalFindings: tc.critical,
				HighFindings:     tc.high,
			}})
			c.Finalize()
			if c.Status != tc.want {
				t.Errorf("Status = %q, want %q", c.Status, tc.want)
			}
		})
	}
}

func TestCommissionReport_JSONRoundTrip(t *testing.T) {
	c := NewCommissionReport("round-trip")
	c.AddPhase(PhaseResult{
		Name:    "testing",
		Status:  PhaseCompleted,
		Summary: Summary{TotalAgents: 1, AgentsFailed: 1, CriticalFindings: 2, HighFindings: 3},
	})
	c.Finalize()

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded CommissionReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded.CriticalFindings != 2 {
		t.Errorf("CriticalFindings = %d, want 2", decoded.CriticalFindings)
	}
	if decoded.HighFindings != 3 {
		t.Errorf("HighFindings = %d, want 3", decoded.HighFindings)
	}
	if decoded.OverallResult != "FAILED" {
		t.Errorf("OverallResult = %q, want FAILED", decoded.OverallResult)
	}
	if decoded.Status != CommissionFailedCritical {
		t.Errorf("Status = %q, want %q", decoded.Status, CommissionFailedCritical)
	}
}

func TestContext_Merge(t *testing.T) {
	base := Context{ContextProjectPath: "/srv/app", "extra": 1}
	merged := base.Merge(Context{"extra": 2, "other": "x"})

	if merged.GetString(ContextProjectPath) != "/srv/app" {
		t.Errorf("project_path = %q, want /srv/app", merged.GetString(ContextProjectPath))
	}
	if merged["extra"] != 2 {
		t.Errorf("extra = %v, want 2 (override wins)", merged["extra"])
	}
	if base["extra"] != 1 {
		t.Error("Merge must not mutate the receiver")
	}
}

func TestContext_GetString_Missing(t *testing.T) {
	c := Context{"n": 42}
	if got := c.GetString("missing"); got != "" {
		t.Errorf("GetString(missing) = %q, want empty", got)
	}
	if got := c.GetString("n"); got != "" {
		t.Errorf("GetString on non-string = %q, want empty", got)
	}
}
