package wfs

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kailas-cloud/wfsquery/internal/domain/search/filter"
)

// Protocol versions understood by the writer.
const (
	Version110 = "1.1.0"
	Version200 = "2.0.0"
)

// Namespaces and schema locations.
const (
	NamespaceWFS110 = "http://www.opengis.net/wfs"
	NamespaceWFS200 = "http://www.opengis.net/wfs/2.0"
	NamespaceOGC    = "http://www.opengis.net/ogc"
	NamespaceFES200 = "http://www.opengis.net/fes/2.0"
	NamespaceXSI    = "http://www.w3.org/2001/XMLSchema-instance"

	schemaLocation110 = NamespaceWFS110 + " http://schemas.opengis.net/wfs/1.1.0/wfs.xsd"
	schemaLocation200 = NamespaceWFS200 + " http://schemas.opengis.net/wfs/2.0/wfs.xsd"
)

// Options configures a single-type GetFeature document.
type Options struct {
	Version       string
	FeatureNS     string
	FeaturePrefix string
	// FeatureTypes is the whole type set of the originating search; TypeName must be one of them.
	FeatureTypes []string
	// TypeName is the feature type the Query block is written for.
	TypeName     string
	// GeometryName is reserved for spatial filters and is not written to the document.
	GeometryName string
	MaxFeatures  *int
	OutputFormat string
	SrsName      string
	// PropertyNames are projected in order.
	PropertyNames []string
	// Filter is optional; nil leaves the Query unconstrained.
	Filter filter.Expression
}

func (o *Options) version() string {
	if o.Version == "" {
		return Version110
	}
	return o.Version
}

func (o *Options) validate() error {
	switch o.version() {
	case Version110, Version200:
	default:
		return fmt.Errorf("unsupported wfs version %q", o.Version)
	}
	if o.TypeName == "" {
		return fmt.Errorf("type name is required")
	}
	if len(o.FeatureTypes) > 0 && !slices.Contains(o.FeatureTypes, o.TypeName) {
		return fmt.Errorf("type name %q is not among feature types %v", o.TypeName, o.FeatureTypes)
	}
	if o.MaxFeatures != nil && *o.MaxFeatures <= 0 {
		return fmt.Errorf("max features must be positive, got %d", *o.MaxFeatures)
	}
	return nil
}

// qualifiedTypeName prefixes the type unless it is already qualified.
func (o *Options) qualifiedTypeName() string {
	if o.FeaturePrefix == "" || strings.Contains(o.TypeName, ":") {
		return o.TypeName
	}
	return o.FeaturePrefix + ":" + o.TypeName
}
