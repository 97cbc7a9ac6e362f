// Package domain holds the core data model for commission verification:
// priorities, statuses, findings, per-agent reports and the aggregated
// commission report.
package domain

// Priority orders verification agents by urgency. Lower values are more
// urgent: Critical runs before High, High before Medium, and so on.
type Priority int

const (
	PriorityCritical Priority = iota
	PriorityHigh
	PriorityMedium
	PriorityLow
	PriorityBackground
)

// String returns the lowercase name of the priority
func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	case PriorityBackground:
		return "background"
	default:
		return "unknown"
	}
}

// ParsePriority converts a name to a Priority, defaulting to Medium
func ParsePriority(s string) Priority {
	switch s {
	case "critical":
		return PriorityCritical
	case "high":
		return PriorityHigh
	case "low":
		return PriorityLow
	case "background":
		return PriorityBackground
	default:
		return PriorityMedium
	}
}

// AgentStatus represents the lifecycle state of a verification agent.
// Transitions are monotonic: Idle → Initializing → Running → Completed or
// Failed. Paused and Cancelled are declared for future cancellation support
// and are not reached by any current path.
type AgentStatus string

const (
	AgentIdle         AgentStatus = "idle"
	AgentInitializing AgentStatus = "initializing"
	AgentRunning      AgentStatus = "running"
	AgentCompleted    AgentStatus = "completed"
	AgentFailed       AgentStatus = "failed"
	AgentPaused       AgentStatus = "paused"
	AgentCancelled    AgentStatus = "cancelled"
)

// PhaseStatus represents the execution state of a phase
type PhaseStatus string

const (
	PhasePending   PhaseStatus = "pending"
	PhaseRunning   PhaseStatus = "running"
	PhaseCompleted PhaseStatus = "completed"
	PhaseFailed    PhaseStatus = "failed"
)

// CommissionStatus represents the overall state of a commission run
type CommissionStatus string

const (
	CommissionRunning        CommissionStatus = "running"
	CommissionCompleted      CommissionStatus = "completed"
	CommissionFailedCritical CommissionStatus = "failed_critical"
	CommissionFailedHigh     CommissionStatus = "failed_high"
	CommissionPassed         CommissionStatus = "passed"
)

// Severity classifies how serious a finding is
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// Category classifies what aspect of the system a finding concerns
type Category string

const (
	CategorySecurity        Category = "security"
	CategoryPerformance     Category = "performance"
	CategoryReliability     Category = "reliability"
	CategoryMaintainability Category = "maintainability"
	CategoryUsability       Category = "usability"
	CategoryCompliance      Category = "compliance"
	CategoryDocumentation   Category = "documentation"
	CategoryTesting         Category = "testing"
	CategoryArchitecture    Category = "architecture"
	CategoryConfiguration   Category = "configuration"
)

// Context is the key/value configuration passed to every agent and phase.
// Recognized keys are "project_path" and "commission_id"; everything else is
// caller-supplied and merged in without validation.
type Context map[string]any

// ContextProjectPath and ContextCommissionID are the keys the core consumes.
const (
	ContextProjectPath  = "project_path"
	ContextCommissionID = "commission_id"
)

// GetString returns the string value for key, or "" if absent or not a string
func (c Context) GetString(key string) string {
	if v, ok := c[key].(string); ok {
		return v
	}
	return ""
}

// Merge returns a copy of c with overrides applied on top
func (c Context) Merge(overrides Context) Context {
	merged := make(Context, len(c)+len(overrides))
	for k, v := range c {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}
