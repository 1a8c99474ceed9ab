// Package metrics defines and registers all custom Prometheus metrics for the
// Aéreo Visão portal API. It is the single source of truth for metric names,
// labels, and help strings; metrics register with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "aereovisao"

// Logins counts credential validation outcomes.
// Labels:
//   - realm: "portal" or "institucional"
//   - outcome: "success", "invalid", "disabled"
var Logins = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by realm and outcome.",
	},
	[]string{"realm", "outcome"},
)

// AuthzDecisions counts per-request guard decisions.
// Label:
//   - decision: "authorized", "anonymous", "rejected", "forbidden"
var AuthzDecisions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of authorization guard decisions.",
	},
	[]string{"decision"},
)

// Uploads counts accepted file uploads.
// Label:
//   - kind: "foto_perfil" or "post_imagem"
var Uploads = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of accepted file uploads, by kind.",
	},
	[]string{"kind"},
)
