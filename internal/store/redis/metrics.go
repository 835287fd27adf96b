package redis

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipmark_store_mutations_total",
		Help: "Committed collection writes, by operation.",
	}, []string{"op"})

	storeRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipmark_store_retries_total",
		Help: "Storage attempts that failed and were retried.",
	})

	storeDroppedRecords = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipmark_store_dropped_records_total",
		Help: "Malformed records dropped by validation-on-read.",
	})

	storeTrimmedRecords = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipmark_store_trimmed_records_total",
		Help: "Records trimmed to bring the collection under the quota threshold.",
	})

	storeQuotaFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipmark_store_quota_failures_total",
		Help: "Writes refused because the collection stayed over the quota threshold.",
	})

	storeLossyReads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipmark_store_lossy_reads_total",
		Help: "Reads that exhausted retries and fell back to an empty collection.",
	})
)
