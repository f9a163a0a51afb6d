package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/wfsquery/internal/domain"
	"github.com/kailas-cloud/wfsquery/internal/domain/search/attribute"
	"github.com/kailas-cloud/wfsquery/internal/domain/search/filter"
	"github.com/kailas-cloud/wfsquery/internal/domain/search/request"
	"github.com/kailas-cloud/wfsquery/internal/logger"
	"github.com/kailas-cloud/wfsquery/internal/wfs"
)

// Combine outcomes reported to the Recorder.
const (
	OutcomeCombined = "combined"
	OutcomeEmpty    = "empty"
	OutcomeError    = "error"
)

// Service builds WFS filters and combined GetFeature requests.
type Service struct {
	serializer Serializer
	recorder   Recorder
}

// New creates a search service. A nil serializer falls back to wfs.Writer.
func New(serializer Serializer) *Service {
	if serializer == nil {
		serializer = wfs.Writer{}
	}
	return &Service{serializer: serializer}
}

// WithRecorder attaches an outcome recorder.
func (s *Service) WithRecorder(r Recorder) *Service {
	s.recorder = r
	return s
}

// BuildFilter creates the filter for term over details. ok is false when no attribute qualifies.
// Over-long terms wrap domain.ErrInvalidTerm; malformed details wrap domain.ErrInvalidConfig.
func (s *Service) BuildFilter(term string, details []attribute.Detail) (filter.Expression, bool, error) {
	if len(term) > domain.MaxTermLength {
		return nil, false, fmt.Errorf("%w: too long (max %d bytes)", domain.ErrInvalidTerm, domain.MaxTermLength)
	}
	expr, ok, err := filter.Build(term, details)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}
	return expr, ok, nil
}

// Combine writes one GetFeature document per feature type and merges their query
// blocks into the first one, in feature type order. ok is false when cfg has no
// feature types. cfg is expected to be validated.
//
// Every per-type document receives the full feature type list; only the Query for
// its own type is written. A later document without a Query block is skipped.
func (s *Service) Combine(
	ctx context.Context, cfg request.SearchConfig, term string,
) (*wfs.Document, bool, error) {
	log := logger.FromContext(ctx)

	if !cfg.HasFeatureTypes() {
		s.observe(OutcomeEmpty, 0)
		return nil, false, nil
	}

	expr, hasFilter, err := filter.Build(term, cfg.AttributeDetails)
	if err != nil {
		s.observe(OutcomeError, 0)
		return nil, false, fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}
	propertyNames := cfg.PropertyNames()

	var acc *wfs.Document
	for i, typeName := range cfg.FeatureTypes {
		opts := wfs.Options{
			Version:       cfg.WFSVersion(),
			FeatureNS:     cfg.FeatureNS,
			FeaturePrefix: cfg.FeaturePrefix,
			FeatureTypes:  cfg.FeatureTypes,
			TypeName:      typeName,
			GeometryName:  cfg.GeometryName,
			MaxFeatures:   cfg.MaxFeatures,
			OutputFormat:  cfg.OutputFormat,
			SrsName:       cfg.SrsName,
			PropertyNames: propertyNames,
		}
		if hasFilter {
			opts.Filter = expr
		}

		d, err := s.serializer.WriteGetFeature(opts)
		if err != nil {
			s.observe(OutcomeError, 0)
			return nil, false, fmt.Errorf("write getfeature for %q: %w", typeName, err)
		}

		if i == 0 {
			acc = d
			continue
		}

		q, found := d.Query()
		if !found {
			log.Warn("getfeature document without query block, skipping",
				zap.String("feature_type", typeName))
			continue
		}
		acc.AppendQuery(q)
	}

	blocks := len(acc.Queries())
	s.observe(OutcomeCombined, blocks)
	log.Debug("getfeature combined",
		zap.Strings("feature_types", cfg.FeatureTypes),
		zap.Int("query_blocks", blocks),
		zap.Bool("filtered", hasFilter),
	)
	return acc, true, nil
}

func (s *Service) observe(outcome string, blocks int) {
	if s.recorder != nil {
		s.recorder.ObserveCombine(outcome, blocks)
	}
}
