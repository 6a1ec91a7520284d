package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecordsMirrored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bountyninja_records_mirrored_total",
		Help: "Records accepted into the local mirror.",
	})
	RecordsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bountyninja_records_rejected_total",
		Help: "Records dropped by the projection layer.",
	})
	StatusDerivations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bountyninja_status_derivations_total",
		Help: "Task status recomputations.",
	})
	DoubleSpends = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bountyninja_double_spends_total",
		Help: "Swaps refused by a mint because proofs were already spent.",
	})
	PayoutOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bountyninja_payouts_total",
		Help: "Multi-mint payout outcomes.",
	}, []string{"outcome"}) //success, partial, failed
)
