package filter

import (
	"strings"
	"testing"

	"github.com/kailas-cloud/wfsquery/internal/domain/search/attribute"
)

func TestBuild_EmptyAttributes(t *testing.T) {
	for _, term := range []string{"", "foo", "12", "*"} {
		expr, ok := mustBuild(t, term, nil)
		if ok || expr != nil {
			t.Errorf("Build(%q, nil) = %v, %v; want nil, false", term, expr, ok)
		}
		expr, ok = mustBuild(t, term, []attribute.Detail{})
		if ok || expr != nil {
			t.Errorf("Build(%q, []) = %v, %v; want nil, false", term, expr, ok)
		}
	}
}

func TestBuild_NumericGuardExcludesOnlyAttribute(t *testing.T) {
	details := []attribute.Detail{{Name: "id", Type: attribute.Int}}

	expr, ok := mustBuild(t, "12a", details)
	if ok || expr != nil {
		t.Fatalf("got %v, %v; want nil, false", expr, ok)
	}
}

func TestBuild_NumericGuardKeepsNumericTerm(t *testing.T) {
	details := []attribute.Detail{{Name: "area", Type: attribute.Number}}

	expr, ok := mustBuild(t, "12.5", details)
	if !ok {
		t.Fatal("expected filter")
	}
	l, isLike := expr.(Like)
	if !isLike {
		t.Fatalf("expected Like, got %T", expr)
	}
	if l.Pattern() != "*12.5*" {
		t.Errorf("Pattern() = %q", l.Pattern())
	}
}

func TestBuild_NumericGuardIgnoresStrings(t *testing.T) {
	details := []attribute.Detail{
		{Name: "id", Type: attribute.Int},
		{Name: "name", Type: attribute.String},
	}

	expr, ok := mustBuild(t, "12a", details)
	if !ok {
		t.Fatal("expected filter")
	}
	l, isLike := expr.(Like)
	if !isLike {
		t.Fatalf("expected single Like leaf, got %T", expr)
	}
	if l.Property() != "name" {
		t.Errorf("Property() = %q, want name", l.Property())
	}
}

func TestBuild_SingleLeafPassthrough(t *testing.T) {
	details := []attribute.Detail{{Name: "name", Type: attribute.String}}

	expr, ok := mustBuild(t, "foo", details)
	if !ok {
		t.Fatal("expected filter")
	}
	l, isLike := expr.(Like)
	if !isLike {
		t.Fatalf("expected Like, got %T", expr)
	}
	if l.Property() != "name" {
		t.Errorf("Property() = %q", l.Property())
	}
	if l.Pattern() != "*foo*" {
		t.Errorf("Pattern() = %q", l.Pattern())
	}
	if l.WildCard() != "*" || l.SingleChar() != "." || l.EscapeChar() != "!" {
		t.Errorf("pattern chars = %q %q %q", l.WildCard(), l.SingleChar(), l.EscapeChar())
	}
	if l.MatchCase() {
		t.Error("MatchCase() should default to false")
	}
}

func TestBuild_OrCombination(t *testing.T) {
	details := []attribute.Detail{
		{Name: "name", Type: attribute.String},
		{Name: "descr", Type: attribute.String},
	}

	expr, ok := mustBuild(t, "foo", details)
	if !ok {
		t.Fatal("expected filter")
	}
	o, isOr := expr.(Or)
	if !isOr {
		t.Fatalf("expected Or, got %T", expr)
	}
	conds := o.Conditions()
	if len(conds) != 2 {
		t.Fatalf("children = %d, want 2", len(conds))
	}
	for i, want := range []string{"name", "descr"} {
		l, isLike := conds[i].(Like)
		if !isLike {
			t.Fatalf("child %d: expected Like, got %T", i, conds[i])
		}
		if l.Property() != want {
			t.Errorf("child %d property = %q, want %q", i, l.Property(), want)
		}
	}
}

func TestBuild_ExactSearch(t *testing.T) {
	details := []attribute.Detail{{Name: "code", Type: attribute.String, ExactSearch: true}}

	expr, ok := mustBuild(t, "X1", details)
	if !ok {
		t.Fatal("expected filter")
	}
	e, isEq := expr.(EqualTo)
	if !isEq {
		t.Fatalf("expected EqualTo, got %T", expr)
	}
	if e.Property() != "code" || e.Literal() != "X1" {
		t.Errorf("got %s", e)
	}
	if !e.MatchCase() {
		t.Error("exact search should be case sensitive")
	}
}

func TestBuild_MatchCase(t *testing.T) {
	details := []attribute.Detail{{Name: "city", Type: attribute.String, MatchCase: true}}

	expr, _ := mustBuild(t, "Berlin", details)
	l, isLike := expr.(Like)
	if !isLike {
		t.Fatalf("expected Like, got %T", expr)
	}
	if !l.MatchCase() {
		t.Error("MatchCase() = false")
	}
}

func TestBuild_MixedLeavesPreserveOrder(t *testing.T) {
	details := []attribute.Detail{
		{Name: "code", Type: attribute.String, ExactSearch: true},
		{Name: "id", Type: attribute.Int},
		{Name: "name", Type: attribute.String},
	}

	expr, ok := mustBuild(t, "42", details)
	if !ok {
		t.Fatal("expected filter")
	}
	want := `OR(EQ(code, "42", matchCase=true), LIKE(id, "*42*", matchCase=false), LIKE(name, "*42*", matchCase=false))`
	if got := expr.String(); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestBuild_EmptyTerm(t *testing.T) {
	details := []attribute.Detail{
		{Name: "id", Type: attribute.Int},
		{Name: "name", Type: attribute.String},
	}

	expr, ok := mustBuild(t, "", details)
	if !ok {
		t.Fatal("expected filter")
	}
	o, isOr := expr.(Or)
	if !isOr {
		t.Fatalf("expected Or, got %T", expr)
	}
	if len(o.Conditions()) != 2 {
		t.Errorf("children = %d, want 2", len(o.Conditions()))
	}
}

func TestBuild_Deterministic(t *testing.T) {
	details := []attribute.Detail{
		{Name: "name", Type: attribute.String},
		{Name: "descr", Type: attribute.String, MatchCase: true},
	}
	a, _ := mustBuild(t, "foo", details)
	b, _ := mustBuild(t, "foo", details)
	if a.String() != b.String() {
		t.Errorf("non-deterministic: %s vs %s", a, b)
	}
}

func mustBuild(t *testing.T, term string, details []attribute.Detail) (Expression, bool) {
	t.Helper()
	expr, ok, err := Build(term, details)
	if err != nil {
		t.Fatalf("Build(%q): unexpected error: %v", term, err)
	}
	return expr, ok
}

func TestBuild_InvalidDetails(t *testing.T) {
	tests := []struct {
		name    string
		term    string
		details []attribute.Detail
		wantErr string
	}{
		{
			name:    "empty name",
			term:    "x",
			details: []attribute.Detail{{Type: attribute.String}},
			wantErr: "attribute_details[0]: attribute name is required",
		},
		{
			name: "unknown type",
			term: "x",
			details: []attribute.Detail{
				{Name: "name", Type: attribute.String},
				{Name: "n", Type: "bogus"},
			},
			wantErr: `attribute_details[1]: invalid attribute type "bogus" for "n"`,
		},
		{
			name:    "invalid detail skipped by numeric guard still fails",
			term:    "abc",
			details: []attribute.Detail{{Type: attribute.Int}},
			wantErr: "attribute name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, ok, err := Build(tt.term, tt.details)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
			if ok || expr != nil {
				t.Errorf("got %v, %v; want nil, false", expr, ok)
			}
		})
	}
}

func TestBuild_LeavesMatchConstructors(t *testing.T) {
	details := []attribute.Detail{
		{Name: "code", Type: attribute.String, ExactSearch: true},
		{Name: "name", Type: attribute.String, MatchCase: true},
	}

	got, ok := mustBuild(t, "X1", details)
	if !ok {
		t.Fatal("expected filter")
	}

	eq, err := NewEqualTo("code", "X1", true)
	if err != nil {
		t.Fatal(err)
	}
	like, err := NewLike("name", "*X1*", WildCard, SingleChar, EscapeChar, true)
	if err != nil {
		t.Fatal(err)
	}
	want, err := NewOr(eq, like)
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != want.String() {
		t.Errorf("Build = %s, want %s", got, want)
	}
}
