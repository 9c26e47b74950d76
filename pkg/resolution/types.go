package resolution

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ComponentID is the opaque identity the resolution engine assigns to a component.
// It is unique for the lifetime of one resolution run.
type ComponentID int64

// ModuleVersionIdentifier identifies a module at a specific version
type ModuleVersionIdentifier struct {
	// Group is the organisation or namespace of the module
	Group string `json:"group"`

	// Name is the module name within its group
	Name string `json:"name"`

	// Version is the selected version
	Version string `json:"version"`
}

// String renders the identifier as group:name:version
func (m ModuleVersionIdentifier) String() string {
	return fmt.Sprintf("%s:%s:%s", m.Group, m.Name, m.Version)
}

// ComponentIdentifier is a source-agnostic handle for a resolved component
type ComponentIdentifier interface {
	DisplayName() string
}

// ModuleComponentIdentifier identifies a component published to a repository
type ModuleComponentIdentifier struct {
	Group   string
	Module  string
	Version string
}

func (m ModuleComponentIdentifier) DisplayName() string {
	return fmt.Sprintf("%s:%s:%s", m.Group, m.Module, m.Version)
}

// ProjectComponentIdentifier identifies a component built from a local project
type ProjectComponentIdentifier struct {
	Path string
}

func (p ProjectComponentIdentifier) DisplayName() string {
	return "project " + p.Path
}

// DetachedComponentIdentifier identifies a synthetic component that was not
// discovered by graph traversal, such as the root of an empty resolution
type DetachedComponentIdentifier struct {
	Name string
}

func (d DetachedComponentIdentifier) DisplayName() string {
	return d.Name
}

// ComponentSelector is the requested reference carried by a dependency edge
type ComponentSelector interface {
	DisplayName() string

	// MatchesStrictly reports whether the identifier satisfies this selector
	// without any conflict resolution being involved
	MatchesStrictly(id ComponentIdentifier) bool
}

// ModuleComponentSelector requests a module by group, name and version constraint
type ModuleComponentSelector struct {
	Group   string
	Module  string
	Version string
}

func (s ModuleComponentSelector) DisplayName() string {
	if s.Version == "" {
		return fmt.Sprintf("%s:%s", s.Group, s.Module)
	}
	return fmt.Sprintf("%s:%s:%s", s.Group, s.Module, s.Version)
}

// MatchesStrictly checks group and module equality, then the version.
// A version that parses as a semver constraint is matched as one; anything else
// must be equal to the candidate version.
func (s ModuleComponentSelector) MatchesStrictly(id ComponentIdentifier) bool {
	m, ok := id.(ModuleComponentIdentifier)
	if !ok {
		return false
	}
	if m.Group != s.Group || m.Module != s.Module {
		return false
	}
	requested := strings.TrimSpace(s.Version)
	if requested == "" {
		return true
	}
	if requested == m.Version {
		return true
	}

	constraint, err := semver.NewConstraint(requested)
	if err != nil {
		return false
	}
	candidate, err := semver.NewVersion(m.Version)
	if err != nil {
		return false
	}
	return constraint.Check(candidate)
}

// ProjectComponentSelector requests a local project by path
type ProjectComponentSelector struct {
	Path string
}

func (s ProjectComponentSelector) DisplayName() string {
	return "project " + s.Path
}

func (s ProjectComponentSelector) MatchesStrictly(id ComponentIdentifier) bool {
	p, ok := id.(ProjectComponentIdentifier)
	return ok && p.Path == s.Path
}

// SelectionReason is the opaque justification for why a component was selected.
// Concrete reasons may also implement Cause() error to expose a structured cause.
type SelectionReason interface {
	Description() string
}

type selectionReason struct {
	description string
	cause       error
}

func (r *selectionReason) Description() string { return r.description }

func (r *selectionReason) Cause() error { return r.cause }

func (r *selectionReason) String() string { return r.description }

// NewSelectionReason returns a reason with the given description and optional cause
func NewSelectionReason(description string, cause error) SelectionReason {
	return &selectionReason{description: description, cause: cause}
}

// Standard selection reasons
var (
	// ReasonRequested marks a component selected because it was requested as-is
	ReasonRequested = NewSelectionReason("requested", nil)

	// ReasonConflictResolution marks a component chosen among conflicting candidates
	ReasonConflictResolution = NewSelectionReason("conflict resolution", nil)

	// ReasonForced marks a component whose version was forced
	ReasonForced = NewSelectionReason("forced", nil)

	// ReasonRoot marks the root of a resolution, including detached empty roots
	ReasonRoot = NewSelectionReason("root", nil)
)

// ReasonCause returns the structured cause of a reason if it carries one
func ReasonCause(r SelectionReason) error {
	if c, ok := r.(interface{ Cause() error }); ok {
		return c.Cause()
	}
	return nil
}

// describeReason tolerates a nil reason
func describeReason(r SelectionReason) string {
	if r == nil {
		return ""
	}
	return r.Description()
}
