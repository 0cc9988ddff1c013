package catalog

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"lorad/pkg/types"
)

var (
	scansTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lorad",
		Subsystem: "catalog",
		Name:      "scans_total",
		Help:      "Total number of completed catalog scans",
	})

	scanDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "lorad",
		Subsystem: "catalog",
		Name:      "scan_duration_seconds",
		Help:      "Duration of full scan+merge+index passes in seconds",
		Buckets:   prometheus.DefBuckets,
	})

	modelsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "lorad",
		Subsystem: "catalog",
		Name:      "models",
		Help:      "Checkpoint files found by the last scan",
	})

	cardsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "lorad",
		Subsystem: "catalog",
		Name:      "cards",
		Help:      "Cards after variant merging",
	})

	mergedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "lorad",
		Subsystem: "catalog",
		Name:      "merged_cards",
		Help:      "Cards carrying more than one variant",
	})
)

func init() {
	prometheus.MustRegister(scansTotal, scanDuration, modelsGauge, cardsGauge, mergedGauge)
}

func observeScan(dur time.Duration, models int, cards []types.CardEntry) {
	scansTotal.Inc()
	scanDuration.Observe(dur.Seconds())
	modelsGauge.Set(float64(models))
	cardsGauge.Set(float64(len(cards)))
	merged := 0
	for _, c := range cards {
		if len(c.Variants) > 1 {
			merged++
		}
	}
	mergedGauge.Set(float64(merged))
}
