// Package metrics defines the custom Prometheus metrics for the community
// API. It is the single source of truth for metric names, labels, and help
// strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "community"

// SignInsTotal counts completed Steam sign-ins.
// Label:
//   - result: "new_user", "returning", or "failed"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_ins_total",
		Help:      "Total number of Steam sign-in attempts, by result.",
	},
	[]string{"result"},
)

// FeedbackSubmittedTotal counts accepted feedback submissions.
// Label:
//   - type: feedback category ("bug", "suggestion", "question", "other")
var FeedbackSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feedback_submitted_total",
		Help:      "Total number of feedback items submitted, by category.",
	},
	[]string{"type"},
)

// StatsUpdatesTotal counts stat pushes from the game server.
// Label:
//   - result: "ok", "bad_key", or "unknown_player"
var StatsUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_updates_total",
		Help:      "Total number of stats update pushes, by result.",
	},
	[]string{"result"},
)

// StatusQueriesTotal counts live status queries against the game server.
// Label:
//   - result: "online" or "offline"
var StatusQueriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_queries_total",
		Help:      "Total number of game server status queries, by result.",
	},
	[]string{"result"},
)

// RoleChangesTotal counts successful role changes.
var RoleChangesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_changes_total",
		Help:      "Total number of successful role changes.",
	},
)
