package resolution

import (
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/chazu/resultgraph/pkg/metrics"
)

// ComponentResult is the event emitted by the resolution engine when it discovers a component
type ComponentResult struct {
	// ResultID is the identity assigned to the component for this run
	ResultID ComponentID

	// ModuleVersion is the selected module/version
	ModuleVersion ModuleVersionIdentifier

	// SelectionReason is why the engine selected this component
	SelectionReason SelectionReason

	// ComponentID is the source-agnostic component handle
	ComponentID ComponentIdentifier

	// VariantName is the name of the selected variant
	VariantName string

	// VariantAttributes describe the selected variant
	VariantAttributes Attributes

	// RepositoryName is the repository the component came from; nil for synthetic components
	RepositoryName *string
}

// DependencyResult is one outgoing dependency discovered for a component.
// A non-nil Failure marks the dependency as unresolved; otherwise Selected names the target.
type DependencyResult struct {
	// Requested is the selector declared by the source component
	Requested ComponentSelector

	// Selected is the target component id for a resolved dependency
	Selected ComponentID

	// Reason is the selection context of a failed dependency
	Reason SelectionReason

	// Failure is the resolution failure, nil when the dependency resolved
	Failure error
}

// Option configures a Builder
type Option func(*Builder)

// WithLogger sets the logger used for visit diagnostics
func WithLogger(logger logr.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithStrictDuplicates makes a repeated visit with different attributes an error
// instead of being silently absorbed
func WithStrictDuplicates(strict bool) Option {
	return func(b *Builder) {
		b.strict = strict
	}
}

// Builder assembles a Result from visitation events. It must be driven from a
// single goroutine and visits must respect the ordering contract: a component is
// visited before any edge names it.
type Builder struct {
	registry *Registry
	edges    *EdgeCache
	logger   logr.Logger
	strict   bool

	started   time.Time
	completed bool
}

// NewBuilder creates a builder for one resolution run
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		registry: NewRegistry(),
		edges:    NewEdgeCache(),
		logger:   logr.Discard(),
		started:  time.Now(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// VisitComponent registers a discovered component. Visiting an id a second time
// keeps the first record.
func (b *Builder) VisitComponent(component ComponentResult) error {
	if b.completed {
		return ErrBuilderCompleted
	}

	variant := ResolvedVariant{Name: component.VariantName, Attributes: component.VariantAttributes}
	existing, created := b.registry.Create(component.ResultID, component.ModuleVersion, component.SelectionReason,
		component.ComponentID, variant, component.RepositoryName)
	if created {
		metrics.RecordComponentVisit("created")
		b.logger.V(2).Info("component registered", "id", component.ResultID, "module", component.ModuleVersion.String())
		return nil
	}

	metrics.RecordComponentVisit("duplicate")
	same := existing.sameAttributes(component.ModuleVersion, component.SelectionReason, component.ComponentID,
		variant, component.RepositoryName)
	if !same {
		b.logger.V(1).Info("ignoring conflicting revisit of component",
			"id", component.ResultID,
			"kept", existing.ModuleVersion().String(),
			"ignored", component.ModuleVersion.String())
		if b.strict {
			return &ContractViolationError{Op: "visit component", ID: component.ResultID, Err: ErrConflictingVisit}
		}
	}
	return nil
}

// VisitOutgoingEdges attaches the dependencies discovered for a component.
// The source and every resolved target must already be visited; otherwise a
// ContractViolationError is returned and nothing is attached.
func (b *Builder) VisitOutgoingEdges(fromID ComponentID, dependencies []DependencyResult) error {
	if b.completed {
		return ErrBuilderCompleted
	}

	from, found := b.registry.Get(fromID)
	if !found {
		return &ContractViolationError{Op: "visit outgoing edges", ID: fromID, Err: ErrUnknownSource}
	}

	// Check every target before mutating so a bad batch leaves no partial edges
	targets := make([]*ResolvedComponent, len(dependencies))
	for i, d := range dependencies {
		if d.Failure != nil {
			continue
		}
		selected, found := b.registry.Get(d.Selected)
		if !found {
			return &ContractViolationError{
				Op:  "visit outgoing edges",
				ID:  d.Selected,
				Err: fmt.Errorf("%w (requested %s from %d)", ErrUnknownTarget, selectorName(d.Requested), fromID),
			}
		}
		targets[i] = selected
	}

	for i, d := range dependencies {
		var (
			edge *DependencyEdge
			hit  bool
		)
		if d.Failure != nil {
			edge, hit = b.edges.unresolved(d.Requested, fromID, d.Reason, d.Failure)
			b.logger.V(1).Info("unresolved dependency", "from", fromID, "requested", selectorName(d.Requested),
				"failure", d.Failure.Error())
		} else {
			edge, hit = b.edges.resolved(d.Requested, fromID, d.Selected)
			targets[i].addDependent(edge)
		}
		from.addDependency(edge)

		metrics.RecordEdgeCacheLookup(hit)
		metrics.RecordEdge(edge.Kind().String())
	}
	return nil
}

// Complete seals the builder and returns the result rooted at rootID
func (b *Builder) Complete(rootID ComponentID) (*Result, error) {
	if b.completed {
		return nil, ErrBuilderCompleted
	}

	elapsed := time.Since(b.started).Seconds()
	if _, found := b.registry.Get(rootID); !found {
		metrics.RecordCompletion("failure", elapsed, 0)
		return nil, &ContractViolationError{Op: "complete", ID: rootID, Err: ErrRootNotFound}
	}

	b.completed = true
	metrics.RecordCompletion("success", elapsed, b.registry.Len())
	b.logger.V(1).Info("resolution result completed", "root", rootID, "components", b.registry.Len(),
		"edgeCache", b.edges.Stats())
	return newResult(b.registry, rootID, b.edges.Stats()), nil
}

// Empty returns a result holding a single detached root with no dependencies
func Empty(moduleVersion ModuleVersionIdentifier, componentID ComponentIdentifier) *Result {
	registry := NewRegistry()
	registry.Create(0, moduleVersion, ReasonRoot, componentID,
		ResolvedVariant{Name: EmptyVariantName, Attributes: EmptyAttributes}, nil)
	return newResult(registry, 0, EdgeCacheStats{})
}
