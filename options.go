package wfsquery

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const defaultCacheTTL = 5 * time.Minute

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	username string
	password string
	db       int
	cacheTTL time.Duration

	profiles map[string]SearchConfig

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithCache enables the document cache on a Redis-protocol server such as
// Valkey or Redis.
func WithCache(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithCacheAuth sets the ACL username and logical database of the cache.
func WithCacheAuth(username string, db int) Option {
	return optionFunc(func(c *clientConfig) {
		c.username = username
		c.db = db
	})
}

// WithCacheTTL sets how long cached documents live. Default: 5 minutes.
func WithCacheTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = ttl
	})
}

// WithProfile registers a named search configuration for GetFeatureFor.
func WithProfile(name string, cfg SearchConfig) Option {
	return optionFunc(func(c *clientConfig) {
		if c.profiles == nil {
			c.profiles = make(map[string]SearchConfig)
		}
		c.profiles[name] = cfg
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts, durations and
// cache results) on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
