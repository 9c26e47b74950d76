package resolution

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"
)

// WalkerConfig contains configuration for concurrent walks over a Result
type WalkerConfig struct {
	// MaxConcurrency is the maximum number of components visited concurrently
	// Default: 10
	MaxConcurrency int

	// StopOnError cancels outstanding visits after the first error
	// Default: false
	StopOnError bool
}

// DefaultWalkerConfig returns the default walker configuration
func DefaultWalkerConfig() WalkerConfig {
	return WalkerConfig{
		MaxConcurrency: 10,
	}
}

// Walker visits the components of a completed Result in parallel.
// Results are immutable, so visitors may read them without locking.
type Walker struct {
	config WalkerConfig
}

// NewWalker creates a new walker
func NewWalker(config WalkerConfig) *Walker {
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = DefaultWalkerConfig().MaxConcurrency
	}
	return &Walker{config: config}
}

// Each calls fn for every component reachable from the root.
// Errors from all visits are joined unless StopOnError is set.
func (w *Walker) Each(ctx context.Context, result *Result, fn func(ctx context.Context, c *ResolvedComponent) error) error {
	if result == nil {
		return fmt.Errorf("result cannot be nil")
	}

	p := pool.New().WithMaxGoroutines(w.config.MaxConcurrency).WithContext(ctx)
	if w.config.StopOnError {
		p = p.WithCancelOnError().WithFirstError()
	}

	for _, c := range result.AllComponents() {
		c := c
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(ctx, c); err != nil {
				return fmt.Errorf("component %d: %w", c.ID(), err)
			}
			return nil
		})
	}

	return p.Wait()
}

// WalkGraph walks the result depth first from the root. visitComponent is
// called once per component; returning false skips its dependencies.
// visitEdge is called for every outgoing edge of a visited component.
// Either callback may be nil.
func WalkGraph(result *Result,
	visitComponent func(c *ResolvedComponent) (bool, error),
	visitEdge func(from *ResolvedComponent, e *DependencyEdge) error) error {
	seen := make(map[ComponentID]bool)

	var walk func(c *ResolvedComponent) error
	walk = func(c *ResolvedComponent) error {
		if seen[c.ID()] {
			return nil
		}
		seen[c.ID()] = true

		descend := true
		if visitComponent != nil {
			var err error
			descend, err = visitComponent(c)
			if err != nil {
				return err
			}
		}
		if !descend {
			return nil
		}

		for _, e := range c.dependencies {
			if visitEdge != nil {
				if err := visitEdge(c, e); err != nil {
					return err
				}
			}
			to, ok := e.Selected()
			if !ok {
				continue
			}
			target, found := result.Component(to)
			if !found {
				return fmt.Errorf("edge %s names unknown component %d", e, to)
			}
			if err := walk(target); err != nil {
				return err
			}
		}
		return nil
	}

	return walk(result.Root())
}
