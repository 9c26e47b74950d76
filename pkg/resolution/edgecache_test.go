package resolution

import (
	"errors"
	"testing"
)

func TestEdgeCache_ResolvedSharing(t *testing.T) {
	cache := NewEdgeCache()

	e1 := cache.ResolvedEdge(moduleSelector("lib", "1.0"), 1, 2)
	e2 := cache.ResolvedEdge(moduleSelector("lib", "1.0"), 1, 2)
	if e1 != e2 {
		t.Error("expected identical resolved edges to be shared")
	}

	tests := []struct {
		name string
		edge *DependencyEdge
	}{
		{name: "different source", edge: cache.ResolvedEdge(moduleSelector("lib", "1.0"), 3, 2)},
		{name: "different target", edge: cache.ResolvedEdge(moduleSelector("lib", "1.0"), 1, 4)},
		{name: "different version requested", edge: cache.ResolvedEdge(moduleSelector("lib", "1.+"), 1, 2)},
		{name: "project selector", edge: cache.ResolvedEdge(ProjectComponentSelector{Path: ":lib"}, 1, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.edge == e1 {
				t.Errorf("expected a distinct edge for %s", tt.name)
			}
		})
	}

	stats := cache.Stats()
	if stats.Hits != 1 {
		t.Errorf("Hits = %d, want 1", stats.Hits)
	}
	if stats.Misses != 5 || stats.Size != 5 {
		t.Errorf("Misses = %d, Size = %d, want 5 and 5", stats.Misses, stats.Size)
	}
}

func TestEdgeCache_UnresolvedSharing(t *testing.T) {
	cache := NewEdgeCache()

	e1 := cache.UnresolvedEdge(moduleSelector("gone", "1.0"), 1, ReasonRequested, errors.New("not found"))
	e2 := cache.UnresolvedEdge(moduleSelector("gone", "1.0"), 1, ReasonRequested, errors.New("not found"))
	if e1 != e2 {
		t.Error("expected identical unresolved edges to be shared")
	}
	if e1.Kind() != EdgeUnresolved {
		t.Errorf("Kind() = %s, want Unresolved", e1.Kind())
	}

	// A different failure must never be hidden behind a shared edge
	e3 := cache.UnresolvedEdge(moduleSelector("gone", "1.0"), 1, ReasonRequested, errors.New("timed out"))
	if e3 == e1 {
		t.Error("expected different failures to produce distinct edges")
	}
	if e3.Failure().Error() != "timed out" {
		t.Errorf("Failure() = %v, want timed out", e3.Failure())
	}

	e4 := cache.UnresolvedEdge(moduleSelector("gone", "1.0"), 1, ReasonForced, errors.New("not found"))
	if e4 == e1 {
		t.Error("expected different reasons to produce distinct edges")
	}

	// Resolved and unresolved edges never share
	e5 := cache.ResolvedEdge(moduleSelector("gone", "1.0"), 1, 0)
	if e5 == e1 {
		t.Error("expected resolved edge to differ from unresolved edge")
	}
}

func TestEdgeCache_CollisionBucket(t *testing.T) {
	cache := NewEdgeCache()

	// Force two different edges into the same bucket to exercise the structural check
	first := cache.ResolvedEdge(moduleSelector("a", "1.0"), 1, 2)
	sig := edgeSignature(first)
	other := &DependencyEdge{kind: EdgeResolved, requested: moduleSelector("b", "1.0"), from: 1, selected: 3}
	cache.buckets[sig] = append(cache.buckets[sig], other)

	if got := cache.ResolvedEdge(moduleSelector("a", "1.0"), 1, 2); got != first {
		t.Error("expected lookup to find the original edge in a shared bucket")
	}
	if sameEdge(first, other) {
		t.Error("edges with different selectors must not compare equal")
	}
}

func BenchmarkEdgeCache_RepeatedResolved(b *testing.B) {
	cache := NewEdgeCache()
	sel := moduleSelector("shared", "2.0")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cache.ResolvedEdge(sel, ComponentID(i%100), 1000)
	}
}
