package datatable

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	refetchTotal   *prometheus.CounterVec
	refetchLatency *prometheus.HistogramVec
}

var metricsSingleton = sync.OnceValue(func() *metrics {
	return &metrics{
		refetchTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "datatable",
			Name:      "refetch_total",
			Help:      "Total number of table refetches.",
		}, []string{"table", "result"}),
		refetchLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "datatable",
			Name:      "refetch_latency_seconds",
			Help:      "Latency distribution for table refetches.",
			Buckets: []float64{
				0.01, 0.02, 0.05,
				0.1, 0.2, 0.5,
				1, 2, 5, 10,
			},
		}, []string{"table", "result"}),
	}
})
