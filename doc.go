// Package wfsquery builds OGC Web Feature Service GetFeature requests from a
// free-text search term.
//
// A search configuration names the feature types to query and the attributes
// to match. For every attribute that can hold the term a comparison is built
// (an exact PropertyIsEqualTo or a wildcard PropertyIsLike); several
// comparisons are OR-ed. One GetFeature document is produced with a Query block
// per feature type.
//
// # Low-level API
//
//	client, _ := wfsquery.New()
//	body, ok, err := client.GetFeature(ctx, wfsquery.SearchConfig{
//	    FeatureNS:     "http://example.com/geo",
//	    FeaturePrefix: "geo",
//	    FeatureTypes:  []string{"cities", "rivers"},
//	    AttributeDetails: []wfsquery.AttributeDetail{
//	        {Name: "name", Type: wfsquery.AttributeString},
//	        {Name: "code", Type: wfsquery.AttributeString, ExactSearch: true},
//	    },
//	}, "oak")
//
// # Fluent API
//
//	body, ok, err := client.Request().
//	    Namespace("http://example.com/geo", "geo").
//	    Types("cities", "rivers").
//	    Match("name").
//	    Exact("code").
//	    Term("oak").
//	    Do(ctx)
//
// ok is false when there is nothing to request (no feature types configured).
//
// # Caching
//
// WithCache enables a shared cache of serialized documents keyed
// by configuration and term.
package wfsquery
