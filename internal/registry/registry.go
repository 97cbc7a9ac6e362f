// Package registry maps agent type names to constructors and tracks created
// instances. A registry is constructed once at startup and passed by
// reference to whatever builds agents; registration during active runs is
// out of contract.
package registry

import (
	"sort"
	"sync"

	"github.com/lumenstage/verifier/internal/agent"
)

// Constructor builds a fresh agent instance with the given id
type Constructor func(id string) *agent.Agent

// Registry tracks agent types and instances
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
	instances    map[string]*agent.Agent
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		constructors: make(map[string]Constructor),
		instances:    make(map[string]*agent.Agent),
	}
}

// Register associates a type name with a constructor. The last registration
// for a name wins.
func (r *Registry) Register(typeName string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[typeName] = ctor
}

// Create instantiates an agent of the given type and records it in the
// instance table. An unregistered type name is a recoverable condition:
// Create returns (nil, false) rather than an error.
func (r *Registry) Create(typeName, id string) (*agent.Agent, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctor, ok := r.constructors[typeName]
	if !ok {
		return nil, false
	}

	a := ctor(id)
	if a != nil {
		r.instances[a.ID] = a
	}
	return a, a != nil
}

// Instance returns a previously created agent by id
func (r *Registry) Instance(id string) (*agent.Agent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.instances[id]
	return a, ok
}

// Types returns the registered type names, sorted
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Instances returns all created agents
func (r *Registry) Instances() []*agent.Agent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*agent.Agent, 0, len(r.instances))
	for _, a := range r.instances {
		out = append(out, a)
	}
	return out
}

// Count returns the number of registered types
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.constructors)
}
