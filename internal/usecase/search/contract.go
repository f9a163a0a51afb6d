package search

import "github.com/kailas-cloud/wfsquery/internal/wfs"

// Serializer writes a single-type GetFeature document.
type Serializer interface {
	WriteGetFeature(opts wfs.Options) (*wfs.Document, error)
}

// Recorder observes combine outcomes. Implementations must be safe for concurrent use.
type Recorder interface {
	ObserveCombine(outcome string, queryBlocks int)
}
