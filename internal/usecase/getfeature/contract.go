package getfeature

import (
	"context"

	"github.com/kailas-cloud/wfsquery/internal/domain/search/request"
	"github.com/kailas-cloud/wfsquery/internal/wfs"
)

// ProfileRepository reads named search profiles.
type ProfileRepository interface {
	Get(ctx context.Context, name string) (request.SearchConfig, error)
	List(ctx context.Context) ([]string, error)
}

// Combiner builds combined GetFeature documents.
type Combiner interface {
	Combine(ctx context.Context, cfg request.SearchConfig, term string) (*wfs.Document, bool, error)
}
