// Package metrics defines and registers all custom Prometheus metrics for the
// authd service. It is the single source of truth for metric names, labels,
// and help strings.
//
// Call Register once per registry that backs a /metrics endpoint. HTTP
// request metrics come from the echoprometheus middleware and are registered
// on the same registry by the router.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "authd"

// ── Authentication ────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login attempts.
// Labels:
//   - operation: "register" or "login"
//   - result: "success", "invalid_credentials", "duplicate_email",
//     "invalid_input" or "error"
var AuthAttemptsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of register and login attempts, by outcome.",
	},
	[]string{"operation", "result"},
)

// TokensIssuedTotal counts session tokens handed out by login.
var TokensIssuedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of session tokens issued.",
	},
)

// TokenVerificationsTotal counts bearer token checks in the auth middleware.
// Label:
//   - result: "valid", "missing", "malformed", "invalid_signature" or "expired"
var TokenVerificationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)

// ── Authorization ─────────────────────────────────────────────────────────────

// AuthorizationDecisionsTotal counts role checks on protected routes.
// Labels:
//   - role: the required role, or "any" when none is required
//   - decision: "allow" or "deny"
var AuthorizationDecisionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_decisions_total",
		Help:      "Total number of role checks on protected routes, by decision.",
	},
	[]string{"role", "decision"},
)

// Register adds every custom metric to reg. Collectors already present on
// reg are left as they are, so registering twice is harmless.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		AuthAttemptsTotal,
		TokensIssuedTotal,
		TokenVerificationsTotal,
		AuthorizationDecisionsTotal,
	} {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}
