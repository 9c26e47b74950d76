// Package resolution assembles the result of a dependency resolution run.
// A Builder consumes component and outgoing-edge visitation events produced by
// a resolution engine and produces an immutable Result: a deduplicated graph of
// resolved components and dependency edges reachable from a single root.
package resolution
