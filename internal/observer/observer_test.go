package observer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lumenstage/verifier/internal/agent"
	"github.com/lumenstage/verifier/internal/domain"
)

func TestCollector_RecordsTerminalTransitions(t *testing.T) {
	c := NewCollector()

	ok := agent.New(agent.Spec{ID: "ok", Name: "ok", Type: "t"},
		func(ctx context.Context, a *agent.Agent, vctx domain.Context) (*domain.Report, error) {
			return a.BuildReport("fine"), nil
		})
	bad := agent.New(agent.Spec{ID: "bad", Name: "bad", Type: "t"},
		func(ctx context.Context, a *agent.Agent, vctx domain.Context) (*domain.Report, error) {
			return nil, errors.New("nope")
		})
	c.WatchAll([]*agent.Agent{ok, bad, nil})

	ok.Run(context.Background(), domain.Context{})
	bad.Run(context.Background(), domain.Context{})

	m := c.Metrics()
	if m.TotalCompleted != 1 {
		t.Errorf("TotalCompleted = %d, want 1", m.TotalCompleted)
	}
	if m.TotalFailed != 1 {
		t.Errorf("TotalFailed = %d, want 1", m.TotalFailed)
	}
}

func TestCollector_RecentAgents(t *testing.T) {
	c := NewCollector()
	a := agent.New(agent.Spec{ID: "r1", Name: "r1", Type: "t"},
		func(ctx context.Context, a *agent.Agent, vctx domain.Context) (*domain.Report, error) {
			return a.BuildReport("ok"), nil
		})
	c.Watch(a)
	a.Run(context.Background(), domain.Context{})

	recent := c.RecentAgents(time.Minute)
	if len(recent) != 1 || recent[0] != "r1" {
		t.Errorf("RecentAgents = %v, want [r1]", recent)
	}
	if got := c.RecentAgents(0); len(got) != 0 {
		t.Errorf("RecentAgents(0) = %v, want empty", got)
	}
}

func TestCollector_EmptyMetrics(t *testing.T) {
	m := NewCollector().Metrics()
	if m.TotalCompleted != 0 || m.TotalFailed != 0 || m.AvgDuration != 0 {
		t.Errorf("empty collector metrics = %+v, want zeros", m)
	}
}
