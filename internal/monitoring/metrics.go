// AngelaMos | 2026
// metrics.go

package monitoring

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

var (
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "garage_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern, method and status",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method", "status"},
	)

	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garage_login_attempts_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"},
	)

	TrialActivations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "garage_trial_activations_total",
			Help: "First logins that started a trial period",
		},
	)

	PartsAdded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "garage_spare_parts_added_total",
			Help: "Spare part line items accrued onto vehicles",
		},
	)

	ChatbotReplies = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garage_chatbot_replies_total",
			Help: "Chatbot replies by classified category",
		},
		[]string{"category"},
	)
)

// PoolStatter reports the redis connection pool. core.Redis satisfies it.
type PoolStatter interface {
	PoolStats() *redis.PoolStats
}

// Registry owns the collectors exposed on the metrics endpoint.
type Registry struct {
	reg *prometheus.Registry
}

func NewRegistry(db *sql.DB, pool PoolStatter) (*Registry, error) {
	reg := prometheus.NewRegistry()

	cs := []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HTTPRequestDuration,
		LoginAttempts,
		TrialActivations,
		PartsAdded,
		ChatbotReplies,
	}

	if db != nil {
		cs = append(cs, collectors.NewDBStatsCollector(db, "garage"))
	}
	if pool != nil {
		cs = append(cs, redisPoolGauges(pool)...)
	}

	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}

	return &Registry{reg: reg}, nil
}

func redisPoolGauges(pool PoolStatter) []prometheus.Collector {
	gauge := func(name, help string, read func(*redis.PoolStats) uint32) prometheus.Collector {
		return prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{Name: "garage_redis_pool_" + name, Help: help},
			func() float64 { return float64(read(pool.PoolStats())) },
		)
	}

	return []prometheus.Collector{
		gauge("total_conns", "Connections held by the redis pool",
			func(s *redis.PoolStats) uint32 { return s.TotalConns }),
		gauge("idle_conns", "Idle connections in the redis pool",
			func(s *redis.PoolStats) uint32 { return s.IdleConns }),
		gauge("hits", "Times a free connection was found in the pool",
			func(s *redis.PoolStats) uint32 { return s.Hits }),
		gauge("misses", "Times a new connection had to be dialed",
			func(s *redis.PoolStats) uint32 { return s.Misses }),
		gauge("timeouts", "Times a wait for a connection timed out",
			func(s *redis.PoolStats) uint32 { return s.Timeouts }),
	}
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
