package wfsquery

import "context"

// RequestBuilder is a fluent builder for GetFeature requests.
type RequestBuilder struct {
	client *Client
	cfg    SearchConfig
	term   string
}

// Namespace sets the feature namespace URI and its prefix.
func (b *RequestBuilder) Namespace(uri, prefix string) *RequestBuilder {
	b.cfg.FeatureNS = uri
	b.cfg.FeaturePrefix = prefix
	return b
}

// Types appends feature types. Query blocks follow the order given.
func (b *RequestBuilder) Types(names ...string) *RequestBuilder {
	b.cfg.FeatureTypes = append(b.cfg.FeatureTypes, names...)
	return b
}

// Match adds a case-insensitive substring-matched string attribute.
func (b *RequestBuilder) Match(name string) *RequestBuilder {
	return b.Attribute(AttributeDetail{Name: name, Type: AttributeString})
}

// Exact adds an exactly matched string attribute.
func (b *RequestBuilder) Exact(name string) *RequestBuilder {
	return b.Attribute(AttributeDetail{Name: name, Type: AttributeString, ExactSearch: true})
}

// Numeric adds a number attribute, used only for numeric-looking terms.
func (b *RequestBuilder) Numeric(name string) *RequestBuilder {
	return b.Attribute(AttributeDetail{Name: name, Type: AttributeNumber})
}

// Attribute adds an attribute with full control over its flags.
func (b *RequestBuilder) Attribute(d AttributeDetail) *RequestBuilder {
	b.cfg.AttributeDetails = append(b.cfg.AttributeDetails, d)
	return b
}

// MaxFeatures caps the number of returned features.
func (b *RequestBuilder) MaxFeatures(n int) *RequestBuilder {
	b.cfg.MaxFeatures = &n
	return b
}

// Geometry sets the geometry attribute name.
func (b *RequestBuilder) Geometry(name string) *RequestBuilder {
	b.cfg.GeometryName = name
	return b
}

// Output sets the requested output format.
func (b *RequestBuilder) Output(format string) *RequestBuilder {
	b.cfg.OutputFormat = format
	return b
}

// SRS sets the requested spatial reference system.
func (b *RequestBuilder) SRS(name string) *RequestBuilder {
	b.cfg.SrsName = name
	return b
}

// Version selects the WFS protocol version (1.1.0 or 2.0.0).
func (b *RequestBuilder) Version(v string) *RequestBuilder {
	b.cfg.Version = v
	return b
}

// Term sets the search term.
func (b *RequestBuilder) Term(t string) *RequestBuilder {
	b.term = t
	return b
}

// Config returns a copy of the configuration built so far.
func (b *RequestBuilder) Config() SearchConfig {
	cfg := b.cfg
	cfg.FeatureTypes = append([]string(nil), b.cfg.FeatureTypes...)
	cfg.AttributeDetails = append([]AttributeDetail(nil), b.cfg.AttributeDetails...)
	return cfg
}

// Do validates the configuration and returns the GetFeature request body.
func (b *RequestBuilder) Do(ctx context.Context) ([]byte, bool, error) {
	return b.client.GetFeature(ctx, b.Config(), b.term)
}
