package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// Expression is a composable predicate node: a leaf comparison on one property,
// or a logical disjunction of other expressions.
type Expression interface {
	// String returns a compact debug representation.
	String() string
	isExpression()
}

// EqualTo is an equality comparison between a property and a literal.
type EqualTo struct {
	property  string
	literal   string
	matchCase bool
}

// NewEqualTo validates and creates an equality leaf.
func NewEqualTo(property, literal string, matchCase bool) (EqualTo, error) {
	if property == "" {
		return EqualTo{}, fmt.Errorf("filter property is required")
	}
	return EqualTo{property: property, literal: literal, matchCase: matchCase}, nil
}

// Property returns the compared property name.
func (e EqualTo) Property() string { return e.property }

// Literal returns the comparison literal.
func (e EqualTo) Literal() string { return e.literal }

// MatchCase reports whether the comparison is case sensitive.
func (e EqualTo) MatchCase() bool { return e.matchCase }

func (e EqualTo) String() string {
	return fmt.Sprintf("EQ(%s, %s, matchCase=%t)", e.property, strconv.Quote(e.literal), e.matchCase)
}

func (EqualTo) isExpression() {}

// Like is a wildcard pattern match on a property.
type Like struct {
	property   string
	pattern    string
	wildCard   string
	singleChar string
	escapeChar string
	matchCase  bool
}

// NewLike validates and creates a pattern leaf.
// wildCard, singleChar and escapeChar must each be a single distinct character.
func NewLike(property, pattern, wildCard, singleChar, escapeChar string, matchCase bool) (Like, error) {
	if property == "" {
		return Like{}, fmt.Errorf("filter property is required")
	}
	if pattern == "" {
		return Like{}, fmt.Errorf("pattern is required for property %q", property)
	}
	for _, c := range []struct{ name, value string }{
		{"wildcard", wildCard},
		{"single character", singleChar},
		{"escape character", escapeChar},
	} {
		if len([]rune(c.value)) != 1 {
			return Like{}, fmt.Errorf("%s must be exactly one character, got %q", c.name, c.value)
		}
	}
	if wildCard == singleChar || wildCard == escapeChar || singleChar == escapeChar {
		return Like{}, fmt.Errorf("wildcard, single and escape characters must differ")
	}
	return Like{
		property:   property,
		pattern:    pattern,
		wildCard:   wildCard,
		singleChar: singleChar,
		escapeChar: escapeChar,
		matchCase:  matchCase,
	}, nil
}

// Property returns the matched property name.
func (l Like) Property() string { return l.property }

// Pattern returns the match pattern, wildcards included.
func (l Like) Pattern() string { return l.pattern }

// WildCard returns the multi-character wildcard.
func (l Like) WildCard() string { return l.wildCard }

// SingleChar returns the single-character wildcard.
func (l Like) SingleChar() string { return l.singleChar }

// EscapeChar returns the escape character.
func (l Like) EscapeChar() string { return l.escapeChar }

// MatchCase reports whether the match is case sensitive.
func (l Like) MatchCase() bool { return l.matchCase }

func (l Like) String() string {
	return fmt.Sprintf("LIKE(%s, %s, matchCase=%t)", l.property, strconv.Quote(l.pattern), l.matchCase)
}

func (Like) isExpression() {}

// Or is a logical disjunction with at least two children.
type Or struct {
	conditions []Expression
}

// NewOr creates a disjunction. Fewer than two conditions is an error:
// a single condition must be used directly.
func NewOr(conditions ...Expression) (Or, error) {
	if len(conditions) < 2 {
		return Or{}, fmt.Errorf("or requires at least 2 conditions, got %d", len(conditions))
	}
	for i, c := range conditions {
		if c == nil {
			return Or{}, fmt.Errorf("or condition %d is nil", i)
		}
	}
	return Or{conditions: append([]Expression(nil), conditions...)}, nil
}

// Conditions returns the children in declaration order.
func (o Or) Conditions() []Expression { return o.conditions }

func (o Or) String() string {
	parts := make([]string, len(o.conditions))
	for i, c := range o.conditions {
		parts[i] = c.String()
	}
	return "OR(" + strings.Join(parts, ", ") + ")"
}

func (Or) isExpression() {}
