// Package metrics defines and registers all custom Prometheus metrics for the
// Majikku community API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register themselves with the default registry via promauto at
// package import time; the /metrics endpoint serves them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "majikku"

// WikiSubmissionsTotal counts wiki writes queued for review.
// Label:
//   - type: "NEW" or "EDIT"
var WikiSubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "wiki_submissions_total",
		Help:      "Total number of wiki submissions queued for review.",
	},
	[]string{"type"},
)

// WikiReviewsTotal counts reviewer decisions on pending submissions.
// Label:
//   - outcome: "approved" or "denied"
var WikiReviewsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "wiki_reviews_total",
		Help:      "Total number of review decisions, by outcome.",
	},
	[]string{"outcome"},
)

// WikiPagesPublishedTotal counts page writes that reached the content store.
// Label:
//   - path: "direct" (bypass publish) or "review" (approved submission)
var WikiPagesPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "wiki_pages_published_total",
		Help:      "Total number of wiki page writes, by publish path.",
	},
	[]string{"path"},
)

// AnnouncementsPostedTotal counts new announcements.
// Label:
//   - category: "NEWS", "EVENT", or "LORE"
var AnnouncementsPostedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "announcements_posted_total",
		Help:      "Total number of announcements posted, by category.",
	},
	[]string{"category"},
)

// NotificationFailuresTotal counts outbound Discord notifications that could
// not be delivered. Deliveries are fire-and-forget, so this counter is the
// only trace of a lost notification besides the log line.
// Label:
//   - kind: "review", "application", or "appeal"
var NotificationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of failed Discord notification deliveries, by kind.",
	},
	[]string{"kind"},
)

// IdentityLookupsTotal counts guild member role lookups against the identity
// provider.
// Label:
//   - result: "ok", "miss" (not a member), or "error"
var IdentityLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "identity_lookups_total",
		Help:      "Total number of guild member role lookups, by result.",
	},
	[]string{"result"},
)
