package activity

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	actionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_actions_total",
			Help: "Total number of recorded member actions",
		},
		[]string{"action"},
	)

	cleanedRows = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "activity_cleanup_deleted_total",
			Help: "Activity rows removed by the retention job",
		},
	)
)

func RecordAction(action Action) {
	actionsTotal.WithLabelValues(string(action)).Inc()
}

func RecordCleanup(deleted int64) {
	cleanedRows.Add(float64(deleted))
}
