// Package metrics defines and registers all custom Prometheus metrics for the
// Food Share API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at package
// load; the /metrics endpoint is mounted by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "foodshare"

// PostsCreatedTotal counts food posts created by donors.
var PostsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of food posts created.",
	},
)

// TransitionsTotal counts successful lifecycle transitions.
// Label:
//   - to: the status the post moved into ("requested", "picked", "delivered")
var TransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "post_transitions_total",
		Help:      "Total number of successful food post status transitions, by target status.",
	},
	[]string{"to"},
)

// AutoAssignTotal counts auto-assignment outcomes on request.
// Label:
//   - result: "matched" (a volunteer was assigned) or "unmatched"
var AutoAssignTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "volunteer_auto_assign_total",
		Help:      "Total number of volunteer auto-assignment attempts, by result.",
	},
	[]string{"result"},
)

// ListingCacheTotal counts lookups against the available-posts listing cache.
// Label:
//   - result: "hit" or "miss"
var ListingCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listing_cache_total",
		Help:      "Total number of available-posts cache lookups, by result.",
	},
	[]string{"result"},
)
