// Package wfs writes OGC Web Feature Service GetFeature request documents.
//
// A Document holds one GetFeature root with zero or more Query blocks. WriteGetFeature
// produces a document with a single Query for one feature type; documents for several
// types are combined by moving their Query blocks into one accumulator with AppendQuery.
//
// Filters are encoded as OGC Filter Encoding 1.1 for WFS 1.1.0 and FES 2.0 for WFS 2.0.0.
package wfs
