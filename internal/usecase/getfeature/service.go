package getfeature

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/wfsquery/internal/domain"
	"github.com/kailas-cloud/wfsquery/internal/domain/search/request"
	"github.com/kailas-cloud/wfsquery/internal/logger"
	"github.com/kailas-cloud/wfsquery/internal/wfs"
)

// Service resolves search configurations and builds GetFeature requests for them.
type Service struct {
	profiles ProfileRepository
	combiner Combiner
}

// New creates a getfeature service.
func New(profiles ProfileRepository, combiner Combiner) *Service {
	return &Service{profiles: profiles, combiner: combiner}
}

// Profiles lists the configured profile names.
func (s *Service) Profiles(ctx context.Context) ([]string, error) {
	names, err := s.profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return names, nil
}

// Profile returns a profile by name.
func (s *Service) Profile(ctx context.Context, name string) (request.SearchConfig, error) {
	cfg, err := s.profiles.Get(ctx, name)
	if err != nil {
		return request.SearchConfig{}, fmt.Errorf("get profile: %w", err)
	}
	return cfg, nil
}

// ForProfile builds the combined request for a named profile.
// ok is false when the profile has no feature types.
func (s *Service) ForProfile(ctx context.Context, name, term string) (*wfs.Document, bool, error) {
	if err := validateTerm(term); err != nil {
		return nil, false, err
	}
	cfg, err := s.Profile(ctx, name)
	if err != nil {
		return nil, false, err
	}
	return s.combine(logger.WithFields(ctx, zap.String("profile", name)), cfg, term)
}

// ForConfig validates an ad-hoc configuration and builds its combined request.
func (s *Service) ForConfig(ctx context.Context, cfg request.SearchConfig, term string) (*wfs.Document, bool, error) {
	if err := validateTerm(term); err != nil {
		return nil, false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, false, fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}
	return s.combine(ctx, cfg, term)
}

func (s *Service) combine(ctx context.Context, cfg request.SearchConfig, term string) (*wfs.Document, bool, error) {
	doc, ok, err := s.combiner.Combine(ctx, cfg, term)
	if err != nil {
		return nil, false, fmt.Errorf("combine requests: %w", err)
	}
	return doc, ok, nil
}

func validateTerm(term string) error {
	if len(term) > domain.MaxTermLength {
		return fmt.Errorf("%w: too long (max %d bytes)", domain.ErrInvalidTerm, domain.MaxTermLength)
	}
	return nil
}
