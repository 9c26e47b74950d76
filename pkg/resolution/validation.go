package resolution

import (
	"fmt"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

// Validate checks the integrity of the Result: every edge starts at its
// declaring component, and every resolved edge is listed exactly once by its
// source and exactly once by its target. All violations are reported together.
func (r *Result) Validate() error {
	var errs []error

	if r.Root() == nil {
		return fmt.Errorf("root component %d is not registered", r.root.ID())
	}

	for _, id := range r.registry.IDs() {
		c, _ := r.registry.Get(id)
		if c.ID() != id {
			errs = append(errs, fmt.Errorf("component %d is registered under id %d", c.ID(), id))
		}
		if err := c.validateDependencies(r.registry); err != nil {
			errs = append(errs, fmt.Errorf("component %d: %w", id, err))
		}
		if err := c.validateDependents(r.registry); err != nil {
			errs = append(errs, fmt.Errorf("component %d: %w", id, err))
		}
	}

	return utilerrors.NewAggregate(errs)
}

func (c *ResolvedComponent) validateDependencies(registry *Registry) error {
	seen := make(map[*DependencyEdge]bool, len(c.dependencies))
	for _, e := range c.dependencies {
		if seen[e] {
			return fmt.Errorf("edge %s listed twice in dependencies", e)
		}
		seen[e] = true

		if e.From() != c.ID() {
			return fmt.Errorf("edge %s does not start at this component", e)
		}
		switch e.Kind() {
		case EdgeResolved:
			to, _ := e.Selected()
			target, found := registry.Get(to)
			if !found {
				return fmt.Errorf("edge %s targets unregistered component %d", e, to)
			}
			if !target.HasDependent(e) {
				return fmt.Errorf("edge %s missing from dependents of %d", e, to)
			}
		case EdgeUnresolved:
			if e.Failure() == nil {
				return fmt.Errorf("unresolved edge %s has no failure", e)
			}
		default:
			return fmt.Errorf("edge %s has unknown kind %s", e, e.Kind())
		}
	}
	return nil
}

func (c *ResolvedComponent) validateDependents(registry *Registry) error {
	if len(c.dependents) != c.dependentSet.Len() {
		return fmt.Errorf("dependents list and set disagree (%d != %d)", len(c.dependents), c.dependentSet.Len())
	}
	for _, e := range c.dependents {
		to, ok := e.Selected()
		if !ok {
			return fmt.Errorf("unresolved edge %s listed as dependent", e)
		}
		if to != c.ID() {
			return fmt.Errorf("dependent edge %s does not target this component", e)
		}
		source, found := registry.Get(e.From())
		if !found {
			return fmt.Errorf("dependent edge %s comes from unregistered component", e)
		}
		if !source.dependencySet.Has(e) {
			return fmt.Errorf("dependent edge %s missing from dependencies of %d", e, e.From())
		}
	}
	return nil
}
