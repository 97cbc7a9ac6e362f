// Package observer collects execution metrics by subscribing to agent
// status transitions.
package observer

import (
	"sync"
	"time"

	"github.com/lumenstage/verifier/internal/agent"
	"github.com/lumenstage/verifier/internal/domain"
)

// Collector accumulates terminal agent transitions across a commission
type Collector struct {
	mu      sync.RWMutex
	entries []entry
}

type entry struct {
	AgentID   string
	AgentName string
	Status    domain.AgentStatus
	Duration  time.Duration
	At        time.Time
}

// Metrics holds aggregated execution metrics
type Metrics struct {
	TotalCompleted int
	TotalFailed    int
	AvgDuration    time.Duration
}

// NewCollector creates an empty collector
func NewCollector() *Collector {
	return &Collector{}
}

// Watch subscribes the collector to an agent's status transitions
func (c *Collector) Watch(a *agent.Agent) {
	a.Subscribe(func(a *agent.Agent, old, next domain.AgentStatus) {
		if next != domain.AgentCompleted && next != domain.AgentFailed {
			return
		}
		m := a.Metrics()
		c.mu.Lock()
		c.entries = append(c.entries, entry{
			AgentID:   a.ID,
			AgentName: a.Name,
			Status:    next,
			Duration:  time.Duration(m.DurationSeconds * float64(time.Second)),
			At:        time.Now(),
		})
		c.mu.Unlock()
	})
}

// WatchAll subscribes the collector to every agent in the list
func (c *Collector) WatchAll(agents []*agent.Agent) {
	for _, a := range agents {
		if a != nil {
			c.Watch(a)
		}
	}
}

// Metrics returns aggregated metrics over all recorded transitions
func (c *Collector) Metrics() Metrics {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var m Metrics
	var total time.Duration
	for _, e := range c.entries {
		switch e.Status {
		case domain.AgentCompleted:
			m.TotalCompleted++
		case domain.AgentFailed:
			m.TotalFailed++
		}
		total += e.Duration
	}
	if n := m.TotalCompleted + m.TotalFailed; n > 0 {
		m.AvgDuration = total / time.Duration(n)
	}
	return m
}

// RecentAgents returns ids of agents that finished within the last duration
func (c *Collector) RecentAgents(since time.Duration) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cutoff := time.Now().Add(-since)
	var out []string
	for _, e := range c.entries {
		if e.At.After(cutoff) {
			out = append(out, e.AgentID)
		}
	}
	return out
}
