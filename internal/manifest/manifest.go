// Package manifest loads custom commission plans from YAML. A manifest
// overrides the built-in phase pipeline: it names the phases, their order
// and dependencies, and which registered check types each phase runs.
package manifest

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lumenstage/verifier/internal/coordinator"
	"github.com/lumenstage/verifier/internal/domain"
	"github.com/lumenstage/verifier/internal/orchestrator"
	"github.com/lumenstage/verifier/internal/registry"
)

// Manifest is a custom commission plan
type Manifest struct {
	Name   string      `yaml:"name"`
	Phases []PhaseSpec `yaml:"phases"`
}

// PhaseSpec describes one phase of a manifest
type PhaseSpec struct {
	Name      string      `yaml:"name"`
	Order     int         `yaml:"order"`
	Required  bool        `yaml:"required"`
	DependsOn []string    `yaml:"depends_on"`
	Checks    []CheckSpec `yaml:"checks"`
}

// CheckSpec selects a registered check type, optionally overriding its
// priority and timeout
type CheckSpec struct {
	Type           string `yaml:"type"`
	ID             string `yaml:"id"`
	Priority       string `yaml:"priority"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Load reads and validates a manifest file
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks structural requirements: named phases, unique names,
// dependencies that reference declared phases
func (m *Manifest) Validate() error {
	if len(m.Phases) == 0 {
		return fmt.Errorf("manifest declares no phases")
	}

	names := make(map[string]bool, len(m.Phases))
	for _, p := range m.Phases {
		if p.Name == "" {
			return fmt.Errorf("manifest phase without a name")
		}
		if names[p.Name] {
			return fmt.Errorf("duplicate phase name %q", p.Name)
		}
		names[p.Name] = true
		if len(p.Checks) == 0 {
			return fmt.Errorf("phase %q declares no checks", p.Name)
		}
	}
	for _, p := range m.Phases {
		for _, dep := range p.DependsOn {
			if !names[dep] {
				return fmt.Errorf("phase %q depends on undeclared phase %q", p.Name, dep)
			}
		}
	}
	return nil
}

// BuildPhases instantiates the manifest's phases from the registry. Check
// types the registry does not know are skipped and logged; an unknown type
// is a recoverable condition, not an error.
func (m *Manifest) BuildPhases(reg *registry.Registry) []*orchestrator.Phase {
	phases := make([]*orchestrator.Phase, 0, len(m.Phases))

	for i, spec := range m.Phases {
		coord := coordinator.New()
		for j, check := range spec.Checks {
			id := check.ID
			if id == "" {
				id = fmt.Sprintf("%s-%s-%d", spec.Name, check.Type, j+1)
			}
			a, ok := reg.Create(check.Type, id)
			if !ok {
				log.Printf("manifest %s: unknown check type %q, skipping", m.Name, check.Type)
				continue
			}
			if check.Priority != "" {
				a.Priority = domain.ParsePriority(check.Priority)
			}
			if check.TimeoutSeconds > 0 {
				a.Timeout = time.Duration(check.TimeoutSeconds) * time.Second
			}
			coord.Add(a)
		}

		order := spec.Order
		if order == 0 {
			order = i + 1
		}
		phases = append(phases, orchestrator.NewPhase(spec.Name, order, spec.Required, coord, spec.DependsOn...))
	}
	return phases
}
