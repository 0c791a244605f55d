package sync

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	profilesSynced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skyscraper_profiles_synced_total",
		Help: "The total number of profile upserts",
	})

	postsSynced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skyscraper_posts_synced_total",
		Help: "The total number of post upserts",
	})

	reposFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skyscraper_repos_failed_total",
		Help: "The total number of repos skipped due to per-repo failures",
	})
)
