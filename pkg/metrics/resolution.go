/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

var (
	// Builder metrics
	componentsVisited = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "resultgraph_components_visited_total",
		Help: "Total number of component visits, by outcome",
	}, []string{"outcome"})

	edgesCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "resultgraph_edges_attached_total",
		Help: "Total number of dependency edges attached to components",
	}, []string{"kind"})

	edgeCacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "resultgraph_edge_cache_lookups_total",
		Help: "Total number of edge cache lookups, by result",
	}, []string{"result"})

	completionDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "resultgraph_build_duration_seconds",
		Help:    "Time from the first visit to completion of a resolution result",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 100us to ~0.8s
	}, []string{"result"})

	componentsInResult = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "resultgraph_components_in_last_result",
		Help: "Number of components in the most recently completed result",
	})
)

func init() {
	metrics.Registry.MustRegister(
		componentsVisited,
		edgesCreated,
		edgeCacheLookups,
		completionDuration,
		componentsInResult,
	)
}

// RecordComponentVisit records a component visit
// outcome: "created" or "duplicate"
func RecordComponentVisit(outcome string) {
	componentsVisited.WithLabelValues(outcome).Inc()
}

// RecordEdge records an edge attached to a component
// kind: "Resolved" or "Unresolved"
func RecordEdge(kind string) {
	edgesCreated.WithLabelValues(kind).Inc()
}

// RecordEdgeCacheLookup records whether the edge cache reused an edge
func RecordEdgeCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	edgeCacheLookups.WithLabelValues(result).Inc()
}

// RecordCompletion records the outcome of Complete
// result: "success" or "failure"
func RecordCompletion(result string, durationSeconds float64, components int) {
	completionDuration.WithLabelValues(result).Observe(durationSeconds)
	if result == "success" {
		componentsInResult.Set(float64(components))
	}
}
