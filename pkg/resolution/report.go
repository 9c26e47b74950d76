package resolution

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Report is a serializable snapshot of the components reachable from the root
type Report struct {
	Root       ComponentID       `json:"root"`
	Components []ComponentReport `json:"components"`
}

// ComponentReport describes one component in a Report
type ComponentReport struct {
	ID           ComponentID  `json:"id"`
	Module       string       `json:"module"`
	Component    string       `json:"component"`
	Reason       string       `json:"reason"`
	Variant      string       `json:"variant"`
	Attributes   []Attribute  `json:"attributes,omitempty"`
	Repository   string       `json:"repository,omitempty"`
	Dependencies []EdgeReport `json:"dependencies,omitempty"`
	Dependents   int          `json:"dependents"`
}

// EdgeReport describes one outgoing edge in a Report
type EdgeReport struct {
	Requested string       `json:"requested"`
	Kind      string       `json:"kind"`
	Selected  *ComponentID `json:"selected,omitempty"`
	Reason    string       `json:"reason,omitempty"`
	Failure   string       `json:"failure,omitempty"`
}

// Report renders the reachable graph in breadth-first order
func (r *Result) Report() Report {
	components := r.AllComponents()
	report := Report{
		Root:       r.root.ID(),
		Components: make([]ComponentReport, 0, len(components)),
	}

	for _, c := range components {
		cr := ComponentReport{
			ID:         c.ID(),
			Module:     c.ModuleVersion().String(),
			Component:  displayName(c.ComponentIdentifier()),
			Reason:     describeReason(c.SelectionReason()),
			Variant:    c.Variant().Name,
			Attributes: c.Variant().Attributes.List(),
			Dependents: len(c.dependents),
		}
		if len(cr.Attributes) == 0 {
			cr.Attributes = nil
		}
		if repo, ok := c.RepositoryName(); ok {
			cr.Repository = repo
		}

		for _, e := range c.dependencies {
			er := EdgeReport{
				Requested: selectorName(e.Requested()),
				Kind:      e.Kind().String(),
			}
			if to, ok := e.Selected(); ok {
				er.Selected = &to
			} else {
				er.Reason = describeReason(e.AttemptedReason())
				er.Failure = failureMessage(e.Failure())
			}
			cr.Dependencies = append(cr.Dependencies, er)
		}
		report.Components = append(report.Components, cr)
	}
	return report
}

// Fingerprint computes a hash of the report for change detection between runs
func (r *Result) Fingerprint() string {
	data, err := json.Marshal(r.Report())
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%x", xxhash.Sum64(data))
}

// HasChanged returns true if the result differs from a previously recorded fingerprint
func (r *Result) HasChanged(previous string) bool {
	if previous == "" {
		return true
	}
	return r.Fingerprint() != previous
}
