package resolution

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// EdgeCacheStats reports how often the cache reused an existing edge
type EdgeCacheStats struct {
	Hits   int `json:"hits"`
	Misses int `json:"misses"`
	Size   int `json:"size"`
}

// EdgeCache hands out shared DependencyEdge values so that structurally
// identical edges are allocated once per resolution run.
type EdgeCache struct {
	// buckets holds edges by signature; a bucket only has more than one entry on a hash collision
	buckets map[uint64][]*DependencyEdge

	hits   int
	misses int
	size   int
}

// NewEdgeCache creates an empty edge cache
func NewEdgeCache() *EdgeCache {
	return &EdgeCache{
		buckets: make(map[uint64][]*DependencyEdge),
	}
}

// ResolvedEdge returns the shared resolved edge for (requested, from, to)
func (c *EdgeCache) ResolvedEdge(requested ComponentSelector, from, to ComponentID) *DependencyEdge {
	edge, _ := c.resolved(requested, from, to)
	return edge
}

func (c *EdgeCache) resolved(requested ComponentSelector, from, to ComponentID) (*DependencyEdge, bool) {
	return c.intern(DependencyEdge{
		kind:      EdgeResolved,
		requested: requested,
		from:      from,
		selected:  to,
	})
}

// UnresolvedEdge returns the shared unresolved edge for (requested, from, reason, failure)
func (c *EdgeCache) UnresolvedEdge(requested ComponentSelector, from ComponentID, reason SelectionReason, failure error) *DependencyEdge {
	edge, _ := c.unresolved(requested, from, reason, failure)
	return edge
}

func (c *EdgeCache) unresolved(requested ComponentSelector, from ComponentID, reason SelectionReason, failure error) (*DependencyEdge, bool) {
	return c.intern(DependencyEdge{
		kind:            EdgeUnresolved,
		requested:       requested,
		from:            from,
		attemptedReason: reason,
		failure:         failure,
	})
}

// Stats returns the hit/miss counters
func (c *EdgeCache) Stats() EdgeCacheStats {
	return EdgeCacheStats{Hits: c.hits, Misses: c.misses, Size: c.size}
}

// intern returns the cached edge equal to candidate, storing candidate on a miss
func (c *EdgeCache) intern(candidate DependencyEdge) (*DependencyEdge, bool) {
	sig := edgeSignature(&candidate)
	for _, existing := range c.buckets[sig] {
		if sameEdge(existing, &candidate) {
			c.hits++
			return existing, true
		}
	}

	edge := &candidate
	c.buckets[sig] = append(c.buckets[sig], edge)
	c.misses++
	c.size++
	return edge, false
}

// edgeSignature hashes the structural content of an edge
func edgeSignature(e *DependencyEdge) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(strconv.Itoa(int(e.kind)))
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(selectorKey(e.requested))
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(strconv.FormatInt(int64(e.from), 10))
	_, _ = d.WriteString("\x00")
	switch e.kind {
	case EdgeResolved:
		_, _ = d.WriteString(strconv.FormatInt(int64(e.selected), 10))
	case EdgeUnresolved:
		_, _ = d.WriteString(describeReason(e.attemptedReason))
		_, _ = d.WriteString("\x00")
		_, _ = d.WriteString(failureMessage(e.failure))
	}
	return d.Sum64()
}

func sameEdge(a, b *DependencyEdge) bool {
	if a.kind != b.kind || a.from != b.from {
		return false
	}
	if selectorKey(a.requested) != selectorKey(b.requested) {
		return false
	}
	if a.kind == EdgeResolved {
		return a.selected == b.selected
	}
	return describeReason(a.attemptedReason) == describeReason(b.attemptedReason) &&
		failureMessage(a.failure) == failureMessage(b.failure)
}

// selectorKey includes the dynamic type so that module and project selectors
// with the same display name never compare equal
func selectorKey(s ComponentSelector) string {
	if s == nil {
		return ""
	}
	return fmt.Sprintf("%T|%s", s, s.DisplayName())
}

func failureMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
