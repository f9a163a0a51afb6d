package wfsquery

import (
	"github.com/kailas-cloud/wfsquery/internal/domain/search/attribute"
	"github.com/kailas-cloud/wfsquery/internal/domain/search/filter"
	"github.com/kailas-cloud/wfsquery/internal/domain/search/request"
	"github.com/kailas-cloud/wfsquery/internal/wfs"
)

// SearchConfig describes the feature types and attributes a term is searched in.
type SearchConfig = request.SearchConfig

// AttributeDetail describes one searchable attribute.
type AttributeDetail = attribute.Detail

// AttributeType is the declared value type of an attribute.
type AttributeType = attribute.Type

// Attribute types.
const (
	AttributeNumber = attribute.Number
	AttributeInt    = attribute.Int
	AttributeString = attribute.String
)

// Filter is a filter expression tree: EqualTo, Like or Or.
type Filter = filter.Expression

// Supported WFS protocol versions.
const (
	Version110 = wfs.Version110
	Version200 = wfs.Version200
)
