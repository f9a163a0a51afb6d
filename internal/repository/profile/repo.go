package profile

import (
	"context"
	"fmt"
	"sort"

	"github.com/kailas-cloud/wfsquery/internal/domain"
	"github.com/kailas-cloud/wfsquery/internal/domain/search/request"
)

// Repo is a read-only, in-memory set of named search profiles.
type Repo struct {
	profiles map[string]request.SearchConfig
	names    []string
}

// New validates every profile and creates the repository.
func New(profiles map[string]request.SearchConfig) (*Repo, error) {
	r := &Repo{
		profiles: make(map[string]request.SearchConfig, len(profiles)),
		names:    make([]string, 0, len(profiles)),
	}
	for name, cfg := range profiles {
		if name == "" {
			return nil, fmt.Errorf("%w: profile name is required", domain.ErrInvalidConfig)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%w: profile %q: %w", domain.ErrInvalidConfig, name, err)
		}
		r.profiles[name] = cfg
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r, nil
}

// Get returns the named profile.
func (r *Repo) Get(_ context.Context, name string) (request.SearchConfig, error) {
	cfg, ok := r.profiles[name]
	if !ok {
		return request.SearchConfig{}, fmt.Errorf("profile %q: %w", name, domain.ErrNotFound)
	}
	return cfg, nil
}

// List returns all profile names in lexical order.
func (r *Repo) List(_ context.Context) ([]string, error) {
	return append([]string(nil), r.names...), nil
}
