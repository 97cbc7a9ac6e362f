package registry

import (
	"testing"

	"github.com/lumenstage/verifier/internal/agent"
	"github.com/lumenstage/verifier/internal/domain"
)

func newTestConstructor(typeName string, priority domain.Priority) Constructor {
	return func(id string) *agent.Agent {
		return agent.New(agent.Spec{ID: id, Name: typeName, Type: typeName, Priority: priority}, nil)
	}
}

func TestRegistry_RegisterAndCreate(t *testing.T) {
	r := New()
	r.Register("preset_audit", newTestConstructor("preset_audit", domain.PriorityHigh))

	a, ok := r.Create("preset_audit", "pa-1")
	if !ok {
		t.Fatal("create should succeed for a registered type")
	}
	if a.Type != "preset_audit" {
		t.Errorf("Type = %q, want preset_audit", a.Type)
	}
	if a.ID != "pa-1" {
		t.Errorf("ID = %q, want pa-1", a.ID)
	}
}

func TestRegistry_CreateUnknownType(t *testing.T) {
	r := New()

	a, ok := r.Create("nonexistent_check", "x")
	if ok {
		t.Error("create for an unknown type must report not found")
	}
	if a != nil {
		t.Error("create for an unknown type must return no instance")
	}
}

func TestRegistry_LastRegistrationWins(t *testing.T) {
	r := New()
	r.Register("dup", newTestConstructor("first", domain.PriorityLow))
	r.Register("dup", newTestConstructor("second", domain.PriorityCritical))

	a, ok := r.Create("dup", "d-1")
	if !ok {
		t.Fatal("create should succeed")
	}
	if a.Name != "second" {
		t.Errorf("Name = %q, want second (last registration wins)", a.Name)
	}
}

func TestRegistry_InstanceLookup(t *testing.T) {
	r := New()
	r.Register("t", newTestConstructor("t", domain.PriorityMedium))
	r.Create("t", "i-1")

	if _, ok := r.Instance("i-1"); !ok {
		t.Error("created instance should be retrievable by id")
	}
	if _, ok := r.Instance("i-2"); ok {
		t.Error("unknown id should not resolve")
	}
	if got := len(r.Instances()); got != 1 {
		t.Errorf("Instances() length = %d, want 1", got)
	}
}

func TestRegistry_TypesSorted(t *testing.T) {
	r := New()
	r.Register("b_check", newTestConstructor("b", domain.PriorityLow))
	r.Register("a_check", newTestConstructor("a", domain.PriorityLow))

	types := r.Types()
	if len(types) != 2 || types[0] != "a_check" || types[1] != "b_check" {
		t.Errorf("Types() = %v, want [a_check b_check]", types)
	}
	if r.Count() != 2 {
		t.Errorf("Count() = %d, want 2", r.Count())
	}
}
