package resolution

import (
	"sort"
	"strings"
)

// Attribute is a single named value describing a variant
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Attributes is an immutable, name-sorted set of variant attributes
type Attributes struct {
	entries []Attribute
}

// EmptyAttributes is the attribute set with no entries
var EmptyAttributes = Attributes{}

// NewAttributes builds an attribute set from a map
func NewAttributes(values map[string]string) Attributes {
	if len(values) == 0 {
		return EmptyAttributes
	}
	entries := make([]Attribute, 0, len(values))
	for name, value := range values {
		entries = append(entries, Attribute{Name: name, Value: value})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return Attributes{entries: entries}
}

// Get returns the value of the named attribute
func (a Attributes) Get(name string) (string, bool) {
	i := sort.Search(len(a.entries), func(i int) bool {
		return a.entries[i].Name >= name
	})
	if i < len(a.entries) && a.entries[i].Name == name {
		return a.entries[i].Value, true
	}
	return "", false
}

// Len returns the number of attributes
func (a Attributes) Len() int {
	return len(a.entries)
}

// IsEmpty reports whether the set has no attributes
func (a Attributes) IsEmpty() bool {
	return len(a.entries) == 0
}

// List returns a copy of the attributes in name order
func (a Attributes) List() []Attribute {
	out := make([]Attribute, len(a.entries))
	copy(out, a.entries)
	return out
}

// Equal reports whether both sets contain the same attributes
func (a Attributes) Equal(other Attributes) bool {
	if len(a.entries) != len(other.entries) {
		return false
	}
	for i := range a.entries {
		if a.entries[i] != other.entries[i] {
			return false
		}
	}
	return true
}

func (a Attributes) String() string {
	parts := make([]string, 0, len(a.entries))
	for _, e := range a.entries {
		parts = append(parts, e.Name+"="+e.Value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ResolvedVariant describes which variant of a component was selected
type ResolvedVariant struct {
	Name       string
	Attributes Attributes
}

// EmptyVariantName is the variant name given to detached empty roots
const EmptyVariantName = "<empty>"
