package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collectors for ditch, scratch-pool and compaction activity.
var (
	DitchesOrderedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tinydoc_ditches_ordered_total",
		Help: "Cumulative number of document ditches registered.",
	})
	DitchesRejectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tinydoc_ditches_rejected_total",
		Help: "Cumulative number of ditch requests rejected because the collection's ditch list was closed or full.",
	})
	DitchesReleasedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tinydoc_ditches_released_total",
		Help: "Cumulative number of document ditches released.",
	})
	BuildersCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tinydoc_builders_created_total",
		Help: "Cumulative number of builder allocations that missed the per-transaction pool.",
	})
	BuildersReusedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tinydoc_builders_reused_total",
		Help: "Cumulative number of builder leases served from the per-transaction pool.",
	})
	CompactionPassesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tinydoc_compaction_passes_total",
		Help: "Cumulative number of compaction passes.",
	})
	CompactionDeferredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tinydoc_compaction_deferred_total",
		Help: "Cumulative number of collections skipped by compaction because active ditches pinned their storage.",
	})
	CompactionReclaimedBytesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tinydoc_compaction_reclaimed_bytes_total",
		Help: "Cumulative number of dead bytes reclaimed by compaction.",
	})
)

func init() {
	prometheus.MustRegister(
		DitchesOrderedTotal,
		DitchesRejectedTotal,
		DitchesReleasedTotal,
		BuildersCreatedTotal,
		BuildersReusedTotal,
		CompactionPassesTotal,
		CompactionDeferredTotal,
		CompactionReclaimedBytesTotal,
	)
}
