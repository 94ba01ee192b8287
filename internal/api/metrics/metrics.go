// Package metrics defines and registers all custom Prometheus metrics for the
// console API. It is the single source of truth for metric names, labels, and
// help strings; metrics register with the default registry at import time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// LoginAttemptsTotal counts credential submissions to the login form.
// Label:
//   - result: "success", "failure", or "locked" (rejected by the guard)
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login submissions, labelled by result.",
	},
	[]string{"result"},
)

// LockoutsTotal counts brute-force lockouts as they trigger.
// Label:
//   - form: the guarded form ("login" or "password_reset")
var LockoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lockouts_total",
		Help:      "Total number of brute-force lockouts triggered, by form.",
	},
	[]string{"form"},
)

// UserOperationsTotal counts user-management mutations.
// Label:
//   - action: "register", "update_role", "update_profile", "update_password", "delete"
var UserOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_operations_total",
		Help:      "Total number of user-management operations, by action.",
	},
	[]string{"action"},
)

// VisualizationRequestsTotal counts natural-language visualization requests.
// Label:
//   - result: "ok" (workflow answered) or "fallback" (mock generator used)
var VisualizationRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "visualization_requests_total",
		Help:      "Total number of visualization requests, by result.",
	},
	[]string{"result"},
)

// WorkflowRequestDuration measures the round trip to the workflow webhook.
// Label:
//   - outcome: "ok" or "error"
var WorkflowRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "workflow_request_duration_seconds",
		Help:      "Duration of workflow webhook calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)

// AuditQueueDepth tracks events waiting in each audit dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
