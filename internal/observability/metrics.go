// Package observability provides prometheus metrics and tracing setup.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PostsCreated counts successfully created posts.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "yatube_posts_created_total",
		Help: "Total number of posts created",
	})

	// CommentsCreated counts successfully created comments.
	CommentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "yatube_comments_created_total",
		Help: "Total number of comments created",
	})

	// FollowsCreated counts follow relationships created.
	FollowsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "yatube_follows_created_total",
		Help: "Total number of follow relationships created",
	})

	// CacheHits counts index page cache hits.
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "yatube_page_cache_hits_total",
		Help: "Total number of page cache hits",
	})

	// CacheMisses counts index page cache misses.
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "yatube_page_cache_misses_total",
		Help: "Total number of page cache misses",
	})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yatube_redis_error_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)
