package filter

import (
	"fmt"

	"github.com/kailas-cloud/wfsquery/internal/domain/search/attribute"
)

// Pattern characters used for substring matching.
const (
	WildCard   = "*"
	SingleChar = "."
	EscapeChar = "!"
)

// Build creates the filter for a search term over the given attributes.
//
// Numeric attributes are skipped when the term is not a numeric literal.
// Exact-search attributes produce an equality leaf, all others a case-insensitive
// (unless MatchCase) substring match. Zero surviving leaves yields ok == false,
// one leaf is returned as is, and more are combined with Or in declaration order.
//
// An invalid detail is an error, whether or not the term would reach it.
func Build(term string, details []attribute.Detail) (Expression, bool, error) {
	if err := attribute.ValidateAll(details); err != nil {
		return nil, false, err
	}
	if len(details) == 0 {
		return nil, false, nil
	}

	leaves := make([]Expression, 0, len(details))
	for _, d := range details {
		if !d.Accepts(term) {
			continue
		}
		l, err := leaf(term, d)
		if err != nil {
			return nil, false, err
		}
		leaves = append(leaves, l)
	}

	switch len(leaves) {
	case 0:
		return nil, false, nil
	case 1:
		return leaves[0], true, nil
	default:
		or, err := NewOr(leaves...)
		if err != nil {
			return nil, false, err
		}
		return or, true, nil
	}
}

func leaf(term string, d attribute.Detail) (Expression, error) {
	if d.ExactSearch {
		// exact search doubles as the case-sensitivity flag
		eq, err := NewEqualTo(d.Name, term, d.ExactSearch)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", d.Name, err)
		}
		return eq, nil
	}
	like, err := NewLike(d.Name, WildCard+term+WildCard, WildCard, SingleChar, EscapeChar, d.MatchCase)
	if err != nil {
		return nil, fmt.Errorf("attribute %q: %w", d.Name, err)
	}
	return like, nil
}
