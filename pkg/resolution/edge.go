package resolution

import "fmt"

// EdgeKind discriminates the two cases of a DependencyEdge
type EdgeKind int

const (
	// EdgeResolved is an edge whose requested selector resolved to a component
	EdgeResolved EdgeKind = iota

	// EdgeUnresolved is an edge that failed to resolve
	EdgeUnresolved
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeResolved:
		return "Resolved"
	case EdgeUnresolved:
		return "Unresolved"
	default:
		return fmt.Sprintf("EdgeKind(%d)", int(k))
	}
}

// DependencyEdge is a directed dependency from a component, either resolved to a
// selected component or unresolved with a failure. Edges are immutable and may be
// shared between components when they are structurally identical.
type DependencyEdge struct {
	kind      EdgeKind
	requested ComponentSelector
	from      ComponentID

	// set for EdgeResolved
	selected ComponentID

	// set for EdgeUnresolved
	attemptedReason SelectionReason
	failure         error
}

// Kind returns the edge discriminant
func (e *DependencyEdge) Kind() EdgeKind {
	return e.kind
}

// Requested returns the selector that produced this edge
func (e *DependencyEdge) Requested() ComponentSelector {
	return e.requested
}

// From returns the id of the component declaring the dependency
func (e *DependencyEdge) From() ComponentID {
	return e.from
}

// Selected returns the target component id of a resolved edge.
// The boolean is false for unresolved edges.
func (e *DependencyEdge) Selected() (ComponentID, bool) {
	if e.kind != EdgeResolved {
		return 0, false
	}
	return e.selected, true
}

// AttemptedReason returns the selection reason context of an unresolved edge
func (e *DependencyEdge) AttemptedReason() SelectionReason {
	return e.attemptedReason
}

// Failure returns the failure of an unresolved edge, or nil for resolved edges
func (e *DependencyEdge) Failure() error {
	return e.failure
}

func (e *DependencyEdge) String() string {
	switch e.kind {
	case EdgeResolved:
		return fmt.Sprintf("%d -> %s -> %d", e.from, selectorName(e.requested), e.selected)
	default:
		return fmt.Sprintf("%d -> %s FAILED: %v", e.from, selectorName(e.requested), e.failure)
	}
}

func selectorName(s ComponentSelector) string {
	if s == nil {
		return "<none>"
	}
	return s.DisplayName()
}
