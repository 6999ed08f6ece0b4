package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersTotal counts order creation attempts by plan and outcome.
	OrdersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "docgentor",
		Subsystem: "payment",
		Name:      "orders_total",
		Help:      "Total payment orders by plan and outcome.",
	}, []string{"plan", "outcome"})

	// VerificationsTotal counts checkout signature checks.
	VerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "docgentor",
		Subsystem: "payment",
		Name:      "verifications_total",
		Help:      "Total checkout signature verifications by result.",
	}, []string{"result"})

	// CodeValidationsTotal counts admin and developer code submissions.
	CodeValidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "docgentor",
		Subsystem: "access_code",
		Name:      "validations_total",
		Help:      "Total access code validations by kind and result.",
	}, []string{"kind", "result"})

	// TransitionsTotal counts persisted entitlement state changes.
	TransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "docgentor",
		Subsystem: "entitlement",
		Name:      "transitions_total",
		Help:      "Entitlement status transitions by source and target status.",
	}, []string{"from", "to", "reason"})

	// SettingsDegradedTotal counts reads that fell back to default settings.
	SettingsDegradedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "docgentor",
		Subsystem: "settings",
		Name:      "degraded_reads_total",
		Help:      "Settings reads served from defaults, by cause.",
	}, []string{"cause"})
)

func Result(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
