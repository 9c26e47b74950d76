package resolution

import (
	"fmt"
	"testing"
)

func moduleVersion(name, version string) ModuleVersionIdentifier {
	return ModuleVersionIdentifier{Group: "org.example", Name: name, Version: version}
}

func moduleSelector(name, version string) ModuleComponentSelector {
	return ModuleComponentSelector{Group: "org.example", Module: name, Version: version}
}

func repo(name string) *string {
	return &name
}

// componentEvent builds a visit event for a module component
func componentEvent(id ComponentID, name, version string) ComponentResult {
	return ComponentResult{
		ResultID:          id,
		ModuleVersion:     moduleVersion(name, version),
		SelectionReason:   ReasonRequested,
		ComponentID:       ModuleComponentIdentifier{Group: "org.example", Module: name, Version: version},
		VariantName:       "runtime",
		VariantAttributes: NewAttributes(map[string]string{"usage": "java-runtime"}),
		RepositoryName:    repo("central"),
	}
}

func resolvedDep(name string, to ComponentID) DependencyResult {
	return DependencyResult{Requested: moduleSelector(name, "1.0"), Selected: to}
}

func failedDep(name, message string) DependencyResult {
	return DependencyResult{
		Requested: moduleSelector(name, "1.0"),
		Reason:    ReasonRequested,
		Failure:   fmt.Errorf("%s", message),
	}
}

func mustVisit(t testing.TB, b *Builder, events ...ComponentResult) {
	t.Helper()
	for _, ev := range events {
		if err := b.VisitComponent(ev); err != nil {
			t.Fatalf("VisitComponent(%d) failed: %v", ev.ResultID, err)
		}
	}
}

func mustEdges(t testing.TB, b *Builder, from ComponentID, deps ...DependencyResult) {
	t.Helper()
	if err := b.VisitOutgoingEdges(from, deps); err != nil {
		t.Fatalf("VisitOutgoingEdges(%d) failed: %v", from, err)
	}
}

func mustComplete(t testing.TB, b *Builder, root ComponentID) *Result {
	t.Helper()
	result, err := b.Complete(root)
	if err != nil {
		t.Fatalf("Complete(%d) failed: %v", root, err)
	}
	return result
}

// diamondResult builds a -> b, a -> c, b -> d, c -> d plus an unresolved a -> missing
func diamondResult(t testing.TB) *Result {
	t.Helper()
	b := NewBuilder()
	mustVisit(t, b,
		componentEvent(1, "a", "1.0"),
		componentEvent(2, "b", "1.0"),
		componentEvent(3, "c", "1.0"),
		componentEvent(4, "d", "1.0"),
	)
	mustEdges(t, b, 1, resolvedDep("b", 2), resolvedDep("c", 3), failedDep("missing", "not found"))
	mustEdges(t, b, 2, resolvedDep("d", 4))
	mustEdges(t, b, 3, resolvedDep("d", 4))
	return mustComplete(t, b, 1)
}

// createLinearResult creates a chain of n components: 0 -> 1 -> 2 -> ...
func createLinearResult(t testing.TB, n int) *Result {
	t.Helper()
	b := NewBuilder()
	for i := 0; i < n; i++ {
		mustVisit(t, b, componentEvent(ComponentID(i), fmt.Sprintf("m%d", i), "1.0"))
	}
	for i := 0; i < n-1; i++ {
		mustEdges(t, b, ComponentID(i), resolvedDep(fmt.Sprintf("m%d", i+1), ComponentID(i+1)))
	}
	return mustComplete(t, b, 0)
}

// createWideResult creates a root with n-1 direct dependencies that all depend on one shared library
func createWideResult(t testing.TB, n int) *Result {
	t.Helper()
	b := NewBuilder()
	shared := ComponentID(n)
	mustVisit(t, b, componentEvent(0, "root", "1.0"), componentEvent(shared, "shared", "2.0"))
	deps := make([]DependencyResult, 0, n-1)
	for i := 1; i < n; i++ {
		mustVisit(t, b, componentEvent(ComponentID(i), fmt.Sprintf("m%d", i), "1.0"))
		deps = append(deps, resolvedDep(fmt.Sprintf("m%d", i), ComponentID(i)))
	}
	mustEdges(t, b, 0, deps...)
	for i := 1; i < n; i++ {
		mustEdges(t, b, ComponentID(i), resolvedDep("shared", shared))
	}
	return mustComplete(t, b, 0)
}
