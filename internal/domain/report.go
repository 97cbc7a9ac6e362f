package domain

import "time"

// Metrics accumulates timing and counting data for one agent execution.
// FindingsCount always equals the sum of the per-severity buckets; the
// buckets are bumped exactly once per finding appended.
type Metrics struct {
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationSeconds float64   `json:"duration_seconds"`
	ItemsProcessed  int       `json:"items_processed"`
	ItemsPassed     int       `json:"items_passed"`
	ItemsFailed     int       `json:"items_failed"`
	FindingsCount   int       `json:"findings_count"`
	CriticalCount   int       `json:"critical_count"`
	HighCount       int       `json:"high_count"`
	MediumCount     int       `json:"medium_count"`
	LowCount        int       `json:"low_count"`
	InfoCount       int       `json:"info_count"`
}

// CountFinding records one finding of the given severity
func (m *Metrics) CountFinding(sev Severity) {
	m.FindingsCount++
	switch sev {
	case SeverityCritical:
		m.CriticalCount++
	case SeverityHigh:
		m.HighCount++
	case SeverityMedium:
		m.MediumCount++
	case SeverityLow:
		m.LowCount++
	case SeverityInfo:
		m.InfoCount++
	}
}

// Report is the complete, immutable outcome of one agent execution.
// It is created exactly once per run and never mutated afterwards.
type Report struct {
	AgentID         string      `json:"agent_id"`
	AgentName       string      `json:"agent_name"`
	AgentType       string      `json:"agent_type"`
	Status          AgentStatus `json:"status"`
	Metrics         Metrics     `json:"metrics"`
	Findings        []Finding   `json:"findings"`
	Summary         string      `json:"summary"`
	Recommendations []string    `json:"recommendations,omitempty"`
}

// Passed reports whether the agent passed: no critical and no high findings
func (r *Report) Passed() bool {
	return r.Metrics.CriticalCount == 0 && r.Metrics.HighCount == 0
}

// Summary aggregates the reports of one coordinator run.
// OverallStatus is "PASSED" iff the aggregate critical and high counts are
// both zero.
type Summary struct {
	TotalAgents          int     `json:"total_agents"`
	AgentsPassed         int     `json:"agents_passed"`
	AgentsFailed         int     `json:"agents_failed"`
	PassRate             float64 `json:"pass_rate"`
	CriticalFindings     int     `json:"critical_findings"`
	HighFindings         int     `json:"high_findings"`
	MediumFindings       int     `json:"medium_findings"`
	LowFindings          int     `json:"low_findings"`
	InfoFindings         int     `json:"info_findings"`
	TotalDurationSeconds float64 `json:"total_duration_seconds"`
	OverallStatus        string  `json:"overall_status"`
}

// Summarize folds a list of reports into a Summary. Aggregation is
// commutative: the result does not depend on report order.
func Summarize(reports []*Report) Summary {
	s := Summary{TotalAgents: len(reports)}
	for _, r := range reports {
		if r == nil {
			continue
		}
		if r.Passed() {
			s.AgentsPassed++
		} else {
			s.AgentsFailed++
		}
		s.CriticalFindings += r.Metrics.CriticalCount
		s.HighFindings += r.Metrics.HighCount
		s.MediumFindings += r.Metrics.MediumCount
		s.LowFindings += r.Metrics.LowCount
		s.InfoFindings += r.Metrics.InfoCount
		s.TotalDurationSeconds += r.Metrics.DurationSeconds
	}
	if s.TotalAgents > 0 {
		s.PassRate = float64(s.AgentsPassed) / float64(s.TotalAgents)
	}
	if s.CriticalFindings == 0 && s.HighFindings == 0 {
		s.OverallStatus = "PASSED"
	} else {
		s.OverallStatus = "FAILED"
	}
	return s
}
