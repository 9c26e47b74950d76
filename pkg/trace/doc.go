// Package trace reads recorded visitation traces and replays them into a
// resolution.Builder. A trace is the ordered list of component and
// outgoing-edge events a resolution engine emitted during one run.
package trace
