package lock

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	acquiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "storyline",
		Subsystem: "lock",
		Name:      "acquired_total",
		Help:      "Story locks granted.",
	})

	conflictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storyline",
			Subsystem: "lock",
			Name:      "conflicts_total",
			Help:      "Lock operations rejected because of the current lock state.",
		},
		[]string{"op"},
	)

	releasedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storyline",
			Subsystem: "lock",
			Name:      "released_total",
			Help:      "Story locks cleared, by reason.",
		},
		[]string{"reason"},
	)
)

const (
	opAcquire = "acquire"
	opRelease = "release"
	opEdit    = "edit"

	reasonUnlock = "unlock"
	reasonEdit   = "edit"
	reasonStale  = "stale"
)
