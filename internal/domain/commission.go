package domain

import "time"

// PhaseResult is the serialized outcome of one phase in a commission run
type PhaseResult struct {
	Name            string      `json:"name"`
	Status          PhaseStatus `json:"status"`
	DurationSeconds float64     `json:"duration_seconds"`
	Summary         Summary     `json:"summary"`
	Error           string      `json:"error,omitempty"`
}

// CommissionReport is the top-level aggregate of an end-to-end run. The
// running totals are only ever updated by folding in phase summaries via
// AddPhase, so they always equal the sum of the phases already recorded.
type CommissionReport struct {
	ID              string           `json:"id"`
	StartTime       time.Time        `json:"start_time"`
	EndTime         time.Time        `json:"end_time"`
	Status          CommissionStatus `json:"status"`
	DurationSeconds float64          `json:"duration_seconds"`
	Phases          []PhaseResult    `json:"phases"`

	AgentsPassed     int `json:"agents_passed"`
	AgentsFailed     int `json:"agents_failed"`
	CriticalFindings int `json:"critical_findings"`
	HighFindings     int `json:"high_findings"`
	MediumFindings   int `json:"medium_findings"`
	LowFindings      int `json:"low_findings"`
	InfoFindings     int `json:"info_findings"`

	Recommendations []string `json:"recommendations"`
	OverallResult   string   `json:"overall_result"`
}

// NewCommissionReport creates a report in the running state
func NewCommissionReport(id string) *CommissionReport {
	return &CommissionReport{
		ID:        id,
		StartTime: time.Now(),
		Status:    CommissionRunning,
	}
}

// AddPhase records a phase result and folds its summary into the totals
func (c *CommissionReport) AddPhase(p PhaseResult) {
	c.Phases = append(c.Phases, p)
	c.AgentsPassed += p.Summary.AgentsPassed
	c.AgentsFailed += p.Summary.AgentsFailed
	c.CriticalFindings += p.Summary.CriticalFindings
	c.HighFindings += p.Summary.HighFindings
	c.MediumFindings += p.Summary.MediumFindings
	c.LowFindings += p.Summary.LowFindings
	c.InfoFindings += p.Summary.InfoFindings
}

// TotalAgents returns the number of agents across all recorded phases
func (c *CommissionReport) TotalAgents() int {
	return c.AgentsPassed + c.AgentsFailed
}

// PassRate returns the fraction of agents that passed, 0 when none ran
func (c *CommissionReport) PassRate() float64 {
	total := c.TotalAgents()
	if total == 0 {
		return 0
	}
	return float64(c.AgentsPassed) / float64(total)
}

// Finalize stamps the end time and derives the overall status and result
// from the accumulated totals
func (c *CommissionReport) Finalize() {
	c.EndTime = time.Now()
	c.DurationSeconds = c.EndTime.Sub(c.StartTime).Seconds()

	switch {
	case c.CriticalFindings > 0:
		c.Status = CommissionFailedCritical
	case c.HighFindings > 0:
		c.Status = CommissionFailedHigh
	default:
		c.Status = CommissionPassed
	}

	if c.CriticalFindings == 0 && c.HighFindings == 0 {
		c.OverallResult = "PASSED"
	} else {
		c.OverallResult = "FAILED"
	}
}
