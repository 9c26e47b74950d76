package resolution

import (
	"k8s.io/apimachinery/pkg/util/sets"
)

// ResolvedComponent is the canonical record of one resolved node. Only the
// Builder mutates it, and only until the Result is completed.
type ResolvedComponent struct {
	id            ComponentID
	moduleVersion ModuleVersionIdentifier
	reason        SelectionReason
	componentID   ComponentIdentifier
	variant       ResolvedVariant
	repoName      *string

	dependencies  []*DependencyEdge
	dependencySet sets.Set[*DependencyEdge]
	dependents    []*DependencyEdge
	dependentSet  sets.Set[*DependencyEdge]
}

func newResolvedComponent(id ComponentID, moduleVersion ModuleVersionIdentifier, reason SelectionReason,
	componentID ComponentIdentifier, variant ResolvedVariant, repoName *string) *ResolvedComponent {
	var repo *string
	if repoName != nil {
		name := *repoName
		repo = &name
	}
	return &ResolvedComponent{
		id:            id,
		moduleVersion: moduleVersion,
		reason:        reason,
		componentID:   componentID,
		variant:       variant,
		repoName:      repo,
		dependencySet: sets.New[*DependencyEdge](),
		dependentSet:  sets.New[*DependencyEdge](),
	}
}

// ID returns the identity assigned by the resolution engine
func (c *ResolvedComponent) ID() ComponentID {
	return c.id
}

// ModuleVersion returns the module/version identifier
func (c *ResolvedComponent) ModuleVersion() ModuleVersionIdentifier {
	return c.moduleVersion
}

// SelectionReason returns why this component was selected
func (c *ResolvedComponent) SelectionReason() SelectionReason {
	return c.reason
}

// ComponentIdentifier returns the source-agnostic component handle
func (c *ResolvedComponent) ComponentIdentifier() ComponentIdentifier {
	return c.componentID
}

// Variant returns the selected variant
func (c *ResolvedComponent) Variant() ResolvedVariant {
	return c.variant
}

// RepositoryName returns the originating repository.
// The boolean is false for synthetic components.
func (c *ResolvedComponent) RepositoryName() (string, bool) {
	if c.repoName == nil {
		return "", false
	}
	return *c.repoName, true
}

// Dependencies returns the outgoing edges in the order they were added
func (c *ResolvedComponent) Dependencies() []*DependencyEdge {
	out := make([]*DependencyEdge, len(c.dependencies))
	copy(out, c.dependencies)
	return out
}

// Dependents returns the resolved edges pointing at this component, in the order they were added
func (c *ResolvedComponent) Dependents() []*DependencyEdge {
	out := make([]*DependencyEdge, len(c.dependents))
	copy(out, c.dependents)
	return out
}

// HasDependent reports whether the edge is among this component's dependents
func (c *ResolvedComponent) HasDependent(e *DependencyEdge) bool {
	return c.dependentSet.Has(e)
}

func (c *ResolvedComponent) addDependency(e *DependencyEdge) {
	if c.dependencySet.Has(e) {
		return
	}
	c.dependencySet.Insert(e)
	c.dependencies = append(c.dependencies, e)
}

func (c *ResolvedComponent) addDependent(e *DependencyEdge) {
	if c.dependentSet.Has(e) {
		return
	}
	c.dependentSet.Insert(e)
	c.dependents = append(c.dependents, e)
}

// sameAttributes reports whether two visits describe the same component
func (c *ResolvedComponent) sameAttributes(moduleVersion ModuleVersionIdentifier, reason SelectionReason,
	componentID ComponentIdentifier, variant ResolvedVariant, repoName *string) bool {
	if c.moduleVersion != moduleVersion {
		return false
	}
	if describeReason(c.reason) != describeReason(reason) {
		return false
	}
	if displayName(c.componentID) != displayName(componentID) {
		return false
	}
	if c.variant.Name != variant.Name || !c.variant.Attributes.Equal(variant.Attributes) {
		return false
	}
	if (c.repoName == nil) != (repoName == nil) {
		return false
	}
	return c.repoName == nil || *c.repoName == *repoName
}

func displayName(id ComponentIdentifier) string {
	if id == nil {
		return ""
	}
	return id.DisplayName()
}
