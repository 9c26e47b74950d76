package trace

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/chazu/resultgraph/pkg/resolution"
)

// Trace is a recorded resolution run
type Trace struct {
	// Root is the identity passed to Complete once all events are replayed
	Root resolution.ComponentID `json:"root"`

	// Events are replayed in order
	Events []Event `json:"events"`
}

// Event is either a component visit or an outgoing-edges visit
type Event struct {
	Component *ComponentEvent `json:"component,omitempty"`
	Edges     *EdgesEvent     `json:"edges,omitempty"`
}

// ComponentEvent records one discovered component
type ComponentEvent struct {
	ID         resolution.ComponentID             `json:"id"`
	Module     resolution.ModuleVersionIdentifier `json:"module"`
	Identifier Identifier                         `json:"identifier"`
	Reason     string                             `json:"reason,omitempty"`
	Variant    string                             `json:"variant,omitempty"`
	Attributes map[string]string                  `json:"attributes,omitempty"`
	Repository *string                            `json:"repository,omitempty"`
}

// EdgesEvent records the outgoing dependencies of one component
type EdgesEvent struct {
	From         resolution.ComponentID `json:"from"`
	Dependencies []Dependency           `json:"dependencies"`
}

// Dependency records one outgoing dependency; Failure marks it unresolved
type Dependency struct {
	Requested Identifier              `json:"requested"`
	Selected  *resolution.ComponentID `json:"selected,omitempty"`
	Reason    string                  `json:"reason,omitempty"`
	Failure   string                  `json:"failure,omitempty"`
}

// IdentifierType names the kind of component or selector
type IdentifierType string

const (
	// IdentifierTypeModule is a published module
	IdentifierTypeModule IdentifierType = "module"

	// IdentifierTypeProject is a local project
	IdentifierTypeProject IdentifierType = "project"

	// IdentifierTypeDetached is a synthetic component
	IdentifierTypeDetached IdentifierType = "detached"
)

// Identifier describes a component identifier or a requested selector
type Identifier struct {
	Type    IdentifierType `json:"type"`
	Group   string         `json:"group,omitempty"`
	Module  string         `json:"module,omitempty"`
	Version string         `json:"version,omitempty"`
	Path    string         `json:"path,omitempty"`
	Name    string         `json:"name,omitempty"`
}

// Load reads and parses a trace file
func Load(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("trace %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a YAML or JSON trace and validates its structure
func Parse(data []byte) (*Trace, error) {
	var t Trace
	if err := yaml.UnmarshalStrict(data, &t); err != nil {
		return nil, fmt.Errorf("failed to decode trace: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("trace validation failed: %w", err)
	}
	return &t, nil
}

// Validate checks the structure of every event. It does not check ordering;
// that is the builder's contract and is reported during Replay.
func (t *Trace) Validate() error {
	for i, ev := range t.Events {
		if err := ev.Validate(); err != nil {
			return fmt.Errorf("events[%d]: %w", i, err)
		}
	}
	return nil
}

// Validate checks that exactly one event kind is set
func (e *Event) Validate() error {
	switch {
	case e.Component != nil && e.Edges != nil:
		return errors.New("event must set only one of component or edges")
	case e.Component != nil:
		if _, err := e.Component.Identifier.componentIdentifier(); err != nil {
			return fmt.Errorf("component %d: %w", e.Component.ID, err)
		}
	case e.Edges != nil:
		for i, d := range e.Edges.Dependencies {
			if err := d.Validate(); err != nil {
				return fmt.Errorf("edges from %d: dependencies[%d]: %w", e.Edges.From, i, err)
			}
		}
	default:
		return errors.New("event must set component or edges")
	}
	return nil
}

// Validate checks that a dependency is either resolved or failed
func (d *Dependency) Validate() error {
	if _, err := d.Requested.selector(); err != nil {
		return err
	}
	if d.Selected == nil && d.Failure == "" {
		return errors.New("dependency must set selected or failure")
	}
	if d.Selected != nil && d.Failure != "" {
		return errors.New("dependency must not set both selected and failure")
	}
	return nil
}

// Replay drives the builder with every event in order and completes it with the trace root
func (t *Trace) Replay(b *resolution.Builder) (*resolution.Result, error) {
	for i, ev := range t.Events {
		if err := ev.apply(b); err != nil {
			return nil, fmt.Errorf("events[%d]: %w", i, err)
		}
	}
	return b.Complete(t.Root)
}

func (e *Event) apply(b *resolution.Builder) error {
	if e.Component != nil {
		c := e.Component
		id, err := c.Identifier.componentIdentifier()
		if err != nil {
			return err
		}
		return b.VisitComponent(resolution.ComponentResult{
			ResultID:          c.ID,
			ModuleVersion:     c.Module,
			SelectionReason:   ParseReason(c.Reason),
			ComponentID:       id,
			VariantName:       c.Variant,
			VariantAttributes: resolution.NewAttributes(c.Attributes),
			RepositoryName:    c.Repository,
		})
	}

	deps := make([]resolution.DependencyResult, 0, len(e.Edges.Dependencies))
	for _, d := range e.Edges.Dependencies {
		sel, err := d.Requested.selector()
		if err != nil {
			return err
		}
		dr := resolution.DependencyResult{Requested: sel}
		if d.Failure != "" {
			dr.Reason = ParseReason(d.Reason)
			dr.Failure = errors.New(d.Failure)
		} else {
			dr.Selected = *d.Selected
		}
		deps = append(deps, dr)
	}
	return b.VisitOutgoingEdges(e.Edges.From, deps)
}

func (i Identifier) componentIdentifier() (resolution.ComponentIdentifier, error) {
	switch i.Type {
	case IdentifierTypeModule:
		if i.Group == "" || i.Module == "" {
			return nil, errors.New("module identifier requires group and module")
		}
		return resolution.ModuleComponentIdentifier{Group: i.Group, Module: i.Module, Version: i.Version}, nil
	case IdentifierTypeProject:
		if i.Path == "" {
			return nil, errors.New("project identifier requires path")
		}
		return resolution.ProjectComponentIdentifier{Path: i.Path}, nil
	case IdentifierTypeDetached:
		return resolution.DetachedComponentIdentifier{Name: i.Name}, nil
	default:
		return nil, fmt.Errorf("invalid identifier type: %q", i.Type)
	}
}

func (i Identifier) selector() (resolution.ComponentSelector, error) {
	switch i.Type {
	case IdentifierTypeModule:
		if i.Group == "" || i.Module == "" {
			return nil, errors.New("module selector requires group and module")
		}
		return resolution.ModuleComponentSelector{Group: i.Group, Module: i.Module, Version: i.Version}, nil
	case IdentifierTypeProject:
		if i.Path == "" {
			return nil, errors.New("project selector requires path")
		}
		return resolution.ProjectComponentSelector{Path: i.Path}, nil
	default:
		return nil, fmt.Errorf("invalid selector type: %q", i.Type)
	}
}

// ParseReason maps a recorded description to a standard reason when one matches
func ParseReason(description string) resolution.SelectionReason {
	standard := []resolution.SelectionReason{
		resolution.ReasonRequested,
		resolution.ReasonConflictResolution,
		resolution.ReasonForced,
		resolution.ReasonRoot,
	}
	d := strings.TrimSpace(description)
	if d == "" {
		return resolution.ReasonRequested
	}
	for _, r := range standard {
		if strings.EqualFold(r.Description(), d) {
			return r
		}
	}
	return resolution.NewSelectionReason(d, nil)
}
