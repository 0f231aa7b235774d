// Copyright (c) 2026 TaskFlow Team
// TaskFlow - task management client
// This source code is licensed under the MIT license found in the LICENSE file.

package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "taskflow"

// metrics are the session counters. With a nil Registerer they are live but
// not exported anywhere.
type metrics struct {
	refreshExchanges prometheus.Counter
	refreshFailures  prometheus.Counter
	refreshCoalesced prometheus.Counter
	refreshWaiters   prometheus.Gauge
	queries          *prometheus.CounterVec
	mutations        *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		refreshExchanges: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "session",
			Name:      "refresh_exchanges_total",
			Help:      "Refresh round-trips sent to the backend.",
		}),
		refreshFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "session",
			Name:      "refresh_failures_total",
			Help:      "Refresh round-trips that ended the session.",
		}),
		refreshCoalesced: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "session",
			Name:      "refresh_coalesced_total",
			Help:      "Refresh calls that joined an exchange already in flight.",
		}),
		refreshWaiters: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "session",
			Name:      "refresh_waiters",
			Help:      "Callers currently waiting on the in-flight refresh.",
		}),
		queries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "session",
			Name:      "queries_total",
			Help:      "Session queries by outcome.",
		}, []string{"outcome"}),
		mutations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "session",
			Name:      "mutations_total",
			Help:      "Login, register and logout calls by result.",
		}, []string{"operation", "result"}),
	}
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
