package api

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	matchRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "talentmatch_match_runs_total",
		Help: "Match runs by outcome.",
	}, []string{"status"})

	matchRunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "talentmatch_match_run_duration_seconds",
		Help:    "Wall time of a complete match run.",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(matchRunsTotal, matchRunDuration)
}
