package trace

import (
	"errors"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/chazu/resultgraph/pkg/resolution"
)

var _ = Describe("Trace", func() {
	Context("when loading a recorded run", func() {
		var t *Trace

		BeforeEach(func() {
			var err error
			t, err = Load(filepath.Join("testdata", "mixed.yaml"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("should decode every event", func() {
			Expect(t.Root).To(Equal(resolution.ComponentID(1)))
			Expect(t.Events).To(HaveLen(5))
			Expect(t.Events[0].Component).NotTo(BeNil())
			Expect(t.Events[2].Edges).NotTo(BeNil())
			Expect(t.Events[2].Edges.Dependencies).To(HaveLen(2))
		})

		It("should replay into a consistent result", func() {
			result, err := t.Replay(resolution.NewBuilder())
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Validate()).To(Succeed())

			root := result.Root()
			Expect(root.ID()).To(Equal(resolution.ComponentID(1)))
			Expect(root.SelectionReason()).To(Equal(resolution.ReasonRoot))
			Expect(root.ComponentIdentifier()).To(Equal(resolution.ProjectComponentIdentifier{Path: ":app"}))
			_, hasRepo := root.RepositoryName()
			Expect(hasRepo).To(BeFalse())

			deps := root.Dependencies()
			Expect(deps).To(HaveLen(2))
			Expect(deps[0].Kind()).To(Equal(resolution.EdgeResolved))
			Expect(deps[1].Kind()).To(Equal(resolution.EdgeUnresolved))
			Expect(deps[1].Failure()).To(MatchError("could not find org.example:gone:1.0"))

			http, found := result.Component(2)
			Expect(found).To(BeTrue())
			Expect(http.SelectionReason()).To(Equal(resolution.ReasonConflictResolution))
			Expect(http.Variant().Attributes.Len()).To(Equal(2))
			Expect(http.Dependents()).To(HaveLen(1))
			Expect(deps[0].Requested().MatchesStrictly(http.ComponentIdentifier())).To(BeTrue())

			Expect(result.AllComponents()).To(HaveLen(3))
		})
	})

	Context("when parsing malformed traces", func() {
		DescribeTable("should reject the trace",
			func(doc string, message string) {
				_, err := Parse([]byte(doc))
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring(message))
			},
			Entry("empty event", `
root: 1
events:
  - {}
`, "must set component or edges"),
			Entry("both event kinds", `
root: 1
events:
  - component: {id: 1, module: {group: g, name: a, version: "1"}, identifier: {type: detached, name: a}}
    edges: {from: 1, dependencies: []}
`, "only one of"),
			Entry("unknown identifier type", `
root: 1
events:
  - component: {id: 1, module: {group: g, name: a, version: "1"}, identifier: {type: bogus}}
`, "invalid identifier type"),
			Entry("dependency without outcome", `
root: 1
events:
  - edges:
      from: 1
      dependencies:
        - requested: {type: module, group: g, module: b}
`, "selected or failure"),
			Entry("dependency with both outcomes", `
root: 1
events:
  - edges:
      from: 1
      dependencies:
        - requested: {type: project, path: ":b"}
          selected: 2
          failure: boom
`, "both selected and failure"),
			Entry("unknown field", `
root: 1
colour: blue
events: []
`, "failed to decode trace"),
		)
	})

	Context("when the recorded order breaks the builder contract", func() {
		It("should report the edge naming an unvisited target", func() {
			t, err := Parse([]byte(`
root: 1
events:
  - component: {id: 1, module: {group: g, name: a, version: "1"}, identifier: {type: detached, name: a}}
  - edges:
      from: 1
      dependencies:
        - requested: {type: module, group: g, module: b, version: "1"}
          selected: 2
  - component: {id: 2, module: {group: g, name: b, version: "1"}, identifier: {type: module, group: g, module: b, version: "1"}}
`))
			Expect(err).NotTo(HaveOccurred())

			_, err = t.Replay(resolution.NewBuilder())
			Expect(err).To(MatchError(resolution.ErrUnknownTarget))
			Expect(err.Error()).To(ContainSubstring("events[1]"))

			var cv *resolution.ContractViolationError
			Expect(errors.As(err, &cv)).To(BeTrue())
			Expect(cv.ID).To(Equal(resolution.ComponentID(2)))
		})

		It("should report a root that was never visited", func() {
			t, err := Parse([]byte(`
root: 9
events:
  - component: {id: 1, module: {group: g, name: a, version: "1"}, identifier: {type: detached, name: a}}
`))
			Expect(err).NotTo(HaveOccurred())

			_, err = t.Replay(resolution.NewBuilder())
			Expect(err).To(MatchError(resolution.ErrRootNotFound))
		})
	})

	Describe("ParseReason", func() {
		It("should map standard descriptions to shared reasons", func() {
			Expect(ParseReason("forced")).To(BeIdenticalTo(resolution.ReasonForced))
			Expect(ParseReason("Conflict Resolution")).To(BeIdenticalTo(resolution.ReasonConflictResolution))
			Expect(ParseReason("")).To(BeIdenticalTo(resolution.ReasonRequested))
		})

		It("should keep custom descriptions", func() {
			Expect(ParseReason("selected by rule").Description()).To(Equal("selected by rule"))
		})
	})
})
