package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Instruction counters and histograms, partitioned by instruction name.

var (
	InstructionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledger",
		Subsystem: "engine",
		Name:      "instructions_total",
		Help:      "Total instructions processed, by outcome",
	}, []string{"instruction", "result"})

	InstructionLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ledger",
		Subsystem: "engine",
		Name:      "instruction_duration_seconds",
		Help:      "Instruction processing duration",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"instruction"})

	RecordReadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledger",
		Subsystem: "api",
		Name:      "record_reads_total",
		Help:      "Total fetch-by-address reads, by namespace and outcome",
	}, []string{"namespace", "result"})

	TokensMoved = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledger",
		Subsystem: "treasury",
		Name:      "tokens_moved_total",
		Help:      "Token units moved, by journal entry kind",
	}, []string{"kind"})
)
