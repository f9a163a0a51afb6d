package wfsquery

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	dbRedis "github.com/kailas-cloud/wfsquery/internal/db/redis"
	profilerepo "github.com/kailas-cloud/wfsquery/internal/repository/profile"
	"github.com/kailas-cloud/wfsquery/internal/repository/requestcache"
	getfeatureuc "github.com/kailas-cloud/wfsquery/internal/usecase/getfeature"
	searchuc "github.com/kailas-cloud/wfsquery/internal/usecase/search"
	"github.com/kailas-cloud/wfsquery/internal/wfs"
)

const defaultReadinessTimeout = 10 * time.Second

// cacheStore is what the client needs from the cache backend.
type cacheStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
	Close()
}

// Client is the wfsquery entry point. It is safe for concurrent use.
type Client struct {
	store      cacheStore
	search     *searchuc.Service
	getfeature *getfeatureuc.Service
	obs        *observer
}

// New creates a Client. Without WithCache no cache is used and
// no connection is made.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{cacheTTL: defaultCacheTTL}
	for _, o := range opts {
		o.apply(cfg)
	}

	var store cacheStore
	if len(cfg.addrs) > 0 {
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Username: cfg.username,
			Password: cfg.password,
			DB:       cfg.db,
		})
		if err != nil {
			return nil, fmt.Errorf("wfsquery: create cache store: %w", err)
		}
		if err := s.WaitForReady(context.Background(), defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, fmt.Errorf("wfsquery: cache not ready: %w", err)
		}
		store = s
	}

	c, err := wireClient(store, cfg)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}
	return c, nil
}

func wireClient(store cacheStore, cfg *clientConfig) (*Client, error) {
	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	profiles, err := profilerepo.New(cfg.profiles)
	if err != nil {
		return nil, fmt.Errorf("wfsquery: %w", err)
	}

	searchSvc := searchuc.New(wfs.Writer{})

	var combiner getfeatureuc.Combiner = searchSvc
	if store != nil {
		combiner = requestcache.New(searchSvc, store, cfg.cacheTTL, obs.cacheCounter(), zap.NewNop())
	}

	return &Client{
		store:      store,
		search:     searchSvc,
		getfeature: getfeatureuc.New(profiles, combiner),
		obs:        obs,
	}, nil
}

// Close releases the cache connection, if any.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks cache connectivity. It is a no-op without a cache.
func (c *Client) Ping(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Filter builds the filter for term over details.
// ok is false when no attribute can hold the term. Malformed details wrap
// ErrInvalidConfig and over-long terms wrap ErrInvalidTerm.
func (c *Client) Filter(term string, details ...AttributeDetail) (Filter, bool, error) {
	start := time.Now()
	expr, ok, err := c.search.BuildFilter(term, details)
	c.obs.observe("filter", start, ok, err)
	if err != nil {
		return nil, false, fmt.Errorf("wfsquery: %w", err)
	}
	return expr, ok, nil
}

// FilterXML builds the filter and encodes it as a standalone Filter element
// for version (empty means 1.1.0).
func (c *Client) FilterXML(term, version string, details ...AttributeDetail) ([]byte, bool, error) {
	start := time.Now()
	expr, ok, err := c.search.BuildFilter(term, details)
	if err != nil {
		c.obs.observe("filter_xml", start, false, err)
		return nil, false, fmt.Errorf("wfsquery: %w", err)
	}
	if !ok {
		c.obs.observe("filter_xml", start, false, nil)
		return nil, false, nil
	}
	b, err := wfs.MarshalFilter(expr, version)
	c.obs.observe("filter_xml", start, true, err)
	if err != nil {
		return nil, false, fmt.Errorf("wfsquery: %w", err)
	}
	return b, true, nil
}

// GetFeature validates cfg and returns the combined GetFeature request body.
// ok is false when cfg has no feature types.
func (c *Client) GetFeature(ctx context.Context, cfg SearchConfig, term string) ([]byte, bool, error) {
	start := time.Now()
	doc, ok, err := c.getfeature.ForConfig(ctx, cfg, term)
	body, ok, err := documentBytes(doc, ok, err)
	c.obs.observe("getfeature", start, ok, err)
	return body, ok, err
}

// GetFeatureFor returns the combined request for a profile registered with WithProfile.
func (c *Client) GetFeatureFor(ctx context.Context, profile, term string) ([]byte, bool, error) {
	start := time.Now()
	doc, ok, err := c.getfeature.ForProfile(ctx, profile, term)
	body, ok, err := documentBytes(doc, ok, err)
	c.obs.observe("getfeature_profile", start, ok, err)
	return body, ok, err
}

// Request starts a fluent request builder.
func (c *Client) Request() *RequestBuilder {
	return &RequestBuilder{client: c}
}

func documentBytes(doc *wfs.Document, ok bool, err error) ([]byte, bool, error) {
	if err != nil {
		return nil, false, fmt.Errorf("wfsquery: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	b, err := doc.Bytes()
	if err != nil {
		return nil, false, fmt.Errorf("wfsquery: %w", err)
	}
	return b, true, nil
}
