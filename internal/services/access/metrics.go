package access

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels of decisionsTotal.
const (
	outcomeAllowed    = "allowed"
	outcomeDenied     = "denied"
	outcomeNoStanding = "no_standing"
	outcomeNotFound   = "not_found"
	outcomeBadRequest = "bad_request"
	outcomeError      = "error"
)

var decisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "boardmaster",
		Name:      "access_decisions_total",
		Help:      "Capability gate decisions by capability and outcome.",
	},
	[]string{"capability", "outcome"},
)
