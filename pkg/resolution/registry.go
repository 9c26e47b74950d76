package resolution

// Registry maps each ComponentID to exactly one canonical ResolvedComponent.
// It is not safe for concurrent mutation; the Builder drives it from one goroutine.
type Registry struct {
	components map[ComponentID]*ResolvedComponent

	// order records ids in first-visit order
	order []ComponentID
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		components: make(map[ComponentID]*ResolvedComponent),
	}
}

// Get returns the component registered for id
func (r *Registry) Get(id ComponentID) (*ResolvedComponent, bool) {
	c, found := r.components[id]
	return c, found
}

// Create registers a component unless id is already present, in which case the
// existing record is kept untouched. It returns the canonical component and
// whether this call created it.
func (r *Registry) Create(id ComponentID, moduleVersion ModuleVersionIdentifier, reason SelectionReason,
	componentID ComponentIdentifier, variant ResolvedVariant, repoName *string) (*ResolvedComponent, bool) {
	if existing, found := r.components[id]; found {
		return existing, false
	}
	c := newResolvedComponent(id, moduleVersion, reason, componentID, variant, repoName)
	r.components[id] = c
	r.order = append(r.order, id)
	return c, true
}

// Len returns the number of registered components
func (r *Registry) Len() int {
	return len(r.components)
}

// IDs returns the registered ids in first-visit order
func (r *Registry) IDs() []ComponentID {
	out := make([]ComponentID, len(r.order))
	copy(out, r.order)
	return out
}
