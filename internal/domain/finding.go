package domain

import "time"

// Finding is a single classified issue discovered by a verification agent.
// A Finding is immutable once appended to an agent.
type Finding struct {
	Category       Category       `json:"category"`
	Severity       Severity       `json:"severity"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Location       string         `json:"location,omitempty"`
	Recommendation string         `json:"recommendation,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
	AutoFixable    bool           `json:"auto_fixable"`
	CreatedAt      time.Time      `json:"created_at"`
}

// NewFinding creates a Finding stamped with the current time
func NewFinding(category Category, severity Severity, title, description string) Finding {
	return Finding{
		Category:    category,
		Severity:    severity,
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
	}
}
