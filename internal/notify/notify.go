// Package notify delivers commission outcome notifications to the desktop
// and to Slack.
package notify

import (
	"fmt"

	"github.com/lumenstage/verifier/internal/domain"
)

// NotificationType represents the type of notification
type NotificationType int

const (
	NotifyInfo NotificationType = iota
	NotifySuccess
	NotifyWarning
	NotifyError
)

// Notification represents a notification to be sent
type Notification struct {
	Title        string
	Message      string
	Type         NotificationType
	CommissionID string
}

// Notifier is the interface for sending notifications
type Notifier interface {
	Send(n Notification) error
}

// MultiNotifier sends to multiple notifiers
type MultiNotifier struct {
	notifiers []Notifier
}

// NewMultiNotifier creates a notifier that sends to all provided notifiers
func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	return &MultiNotifier{notifiers: notifiers}
}

// Send sends the notification to all notifiers
func (m *MultiNotifier) Send(n Notification) error {
	var lastErr error
	for _, notifier := range m.notifiers {
		if err := notifier.Send(n); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// NoopNotifier does nothing (for testing or disabled notifications)
type NoopNotifier struct{}

func (NoopNotifier) Send(n Notification) error { return nil }

// FromReport builds the outcome notification for a finished commission
func FromReport(report *domain.CommissionReport) Notification {
	n := Notification{CommissionID: report.ID}

	switch report.Status {
	case domain.CommissionPassed:
		n.Type = NotifySuccess
		n.Title = "Commission passed"
	case domain.CommissionFailedHigh:
		n.Type = NotifyWarning
		n.Title = "Commission failed: high severity findings"
	case domain.CommissionFailedCritical:
		n.Type = NotifyError
		n.Title = "Commission failed: critical findings"
	default:
		n.Type = NotifyInfo
		n.Title = fmt.Sprintf("Commission %s", report.Status)
	}

	n.Message = fmt.Sprintf("%d/%d agents passed, %d critical / %d high findings in %.1fs",
		report.AgentsPassed, report.TotalAgents(),
		report.CriticalFindings, report.HighFindings,
		report.DurationSeconds)
	return n
}
