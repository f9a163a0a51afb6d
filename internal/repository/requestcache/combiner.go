package requestcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/wfsquery/internal/db"
	"github.com/kailas-cloud/wfsquery/internal/domain"
	"github.com/kailas-cloud/wfsquery/internal/domain/search/request"
	"github.com/kailas-cloud/wfsquery/internal/wfs"
)

var cacheKeyPrefix = domain.KeyPrefix + "getfeature:"

// outcomeCombined matches the outcome the search service reports for a built document.
const outcomeCombined = "combined"

// store is the consumer interface for the request cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Recorder observes served documents; cache hits never reach the inner combiner.
type Recorder interface {
	ObserveCombine(outcome string, queryBlocks int)
}

// Combiner builds combined GetFeature documents.
type Combiner interface {
	Combine(ctx context.Context, cfg request.SearchConfig, term string) (*wfs.Document, bool, error)
}

// CachedCombiner caches serialized GetFeature documents in a key-value store.
type CachedCombiner struct {
	inner      Combiner
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	recorder   Recorder
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner Combiner,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedCombiner {
	return &CachedCombiner{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// WithRecorder reports cache hits as combined documents, so outcome totals
// cover every served request.
func (c *CachedCombiner) WithRecorder(r Recorder) *CachedCombiner {
	c.recorder = r
	return c
}

// Combine returns a cached document or delegates to the inner combiner.
// "No request" outcomes are never cached. Store failures degrade to a miss.
func (c *CachedCombiner) Combine(
	ctx context.Context, cfg request.SearchConfig, term string,
) (*wfs.Document, bool, error) {
	if !cfg.HasFeatureTypes() {
		return c.inner.Combine(ctx, cfg, term)
	}

	key, err := cacheKey(cfg, term)
	if err != nil {
		c.logger.Warn("request cache key", zap.Error(err))
		return c.inner.Combine(ctx, cfg, term)
	}

	if doc, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		if c.recorder != nil {
			c.recorder.ObserveCombine(outcomeCombined, len(doc.Queries()))
		}
		return doc, true, nil
	}
	c.incCache("miss")

	doc, ok, err := c.inner.Combine(ctx, cfg, term)
	if err != nil {
		return nil, false, fmt.Errorf("combine: %w", err)
	}
	if ok {
		c.putToCache(ctx, key, doc)
	}
	return doc, ok, nil
}

func (c *CachedCombiner) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedCombiner) getFromCache(ctx context.Context, key string) (*wfs.Document, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("request cache get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	doc, err := wfs.Parse(data)
	if err != nil {
		c.logger.Warn("request cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return doc, true
}

func (c *CachedCombiner) putToCache(ctx context.Context, key string, doc *wfs.Document) {
	data, err := doc.Bytes()
	if err != nil {
		c.logger.Warn("request cache encode failed", zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("request cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// cacheKey hashes the full config and term; any option change yields a new key.
// The version is normalized first, so "" and "1.1.0" share an entry.
func cacheKey(cfg request.SearchConfig, term string) (string, error) {
	cfg.Version = cfg.WFSVersion()
	raw, err := json.Marshal(struct {
		Config request.SearchConfig `json:"config"`
		Term   string               `json:"term"`
	}{cfg, term})
	if err != nil {
		return "", fmt.Errorf("marshal cache key: %w", err)
	}
	h := sha256.Sum256(raw)
	return cacheKeyPrefix + hex.EncodeToString(h[:]), nil
}
