package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rowsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ceap",
		Subsystem: "ingest",
		Name:      "rows_processed_total",
		Help:      "CSV rows read across all ingestion runs.",
	})
	rowsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ceap",
		Subsystem: "ingest",
		Name:      "rows_rejected_total",
		Help:      "CSV rows rejected across all ingestion runs.",
	})
	runsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ceap",
		Subsystem: "ingest",
		Name:      "runs_total",
		Help:      "Ingestion runs by terminal status.",
	}, []string{"status"})
)
