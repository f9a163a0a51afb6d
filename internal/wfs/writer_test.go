package wfs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/google/go-cmp/cmp"

	"github.com/kailas-cloud/wfsquery/internal/domain/search/filter"
)

func intPtr(i int) *int { return &i }

func parseXML(t *testing.T, d *Document) *xmlquery.Node {
	t.Helper()
	b, err := d.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	n, err := xmlquery.Parse(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("xmlquery.Parse: %v\n%s", err, b)
	}
	return n
}

func texts(nodes []*xmlquery.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.InnerText()
	}
	return out
}

func baseOptions() Options {
	return Options{
		FeatureNS:     "http://example.com/geo",
		FeaturePrefix: "geo",
		FeatureTypes:  []string{"cities", "rivers"},
		TypeName:      "cities",
		MaxFeatures:   intPtr(25),
		OutputFormat:  "application/json",
		SrsName:       "EPSG:3857",
		PropertyNames: []string{"city", "population"},
	}
}

func TestWriteGetFeature_RootAndQuery(t *testing.T) {
	d, err := WriteGetFeature(baseOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := parseXML(t, d)

	root := xmlquery.FindOne(doc, "/GetFeature")
	if root == nil {
		t.Fatal("GetFeature root missing")
	}
	if got := root.SelectAttr("service"); got != "WFS" {
		t.Errorf("service = %q", got)
	}
	if got := root.SelectAttr("version"); got != Version110 {
		t.Errorf("version = %q", got)
	}
	if got := root.SelectAttr("maxFeatures"); got != "25" {
		t.Errorf("maxFeatures = %q", got)
	}
	if got := root.SelectAttr("outputFormat"); got != "application/json" {
		t.Errorf("outputFormat = %q", got)
	}

	queries := xmlquery.Find(doc, "/GetFeature/Query")
	if len(queries) != 1 {
		t.Fatalf("queries = %d, want 1", len(queries))
	}
	q := queries[0]
	if got := q.SelectAttr("typeName"); got != "geo:cities" {
		t.Errorf("typeName = %q", got)
	}
	if got := q.SelectAttr("srsName"); got != "EPSG:3857" {
		t.Errorf("srsName = %q", got)
	}
	props := texts(xmlquery.Find(q, "./PropertyName"))
	if diff := cmp.Diff([]string{"city", "population"}, props); diff != "" {
		t.Errorf("property names mismatch (-want +got):\n%s", diff)
	}
	if xmlquery.FindOne(q, "./Filter") != nil {
		t.Error("unexpected Filter without filter option")
	}
}

func TestWriteGetFeature_OmitsOptionalAttributes(t *testing.T) {
	opts := baseOptions()
	opts.MaxFeatures = nil
	opts.OutputFormat = ""
	opts.SrsName = ""

	d, err := WriteGetFeature(opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := d.String()
	for _, attr := range []string{"maxFeatures", "outputFormat", "srsName"} {
		if strings.Contains(s, attr+"=") {
			t.Errorf("document contains %s:\n%s", attr, s)
		}
	}
}

func TestWriteGetFeature_GeometryNameNotWritten(t *testing.T) {
	opts := baseOptions()
	opts.GeometryName = "the_geom"

	d, err := WriteGetFeature(opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s := d.String(); strings.Contains(s, "the_geom") {
		t.Errorf("document mentions geometry name:\n%s", s)
	}
}

func TestWriteGetFeature_DeclaresFeatureNamespace(t *testing.T) {
	d, err := WriteGetFeature(baseOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(d.String(), `xmlns:geo="http://example.com/geo"`) {
		t.Errorf("feature namespace not declared:\n%s", d)
	}
}

func TestWriteGetFeature_QualifiedTypeNameKept(t *testing.T) {
	opts := baseOptions()
	opts.FeatureTypes = []string{"other:cities"}
	opts.TypeName = "other:cities"

	d, err := WriteGetFeature(opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"other:cities"}, d.TypeNames()); diff != "" {
		t.Errorf("TypeNames() mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteGetFeature_LikeFilter(t *testing.T) {
	like, err := filter.NewLike("city", "*Berlin*", "*", ".", "!", false)
	if err != nil {
		t.Fatalf("NewLike: %v", err)
	}
	opts := baseOptions()
	opts.Filter = like

	d, err := WriteGetFeature(opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := parseXML(t, d)

	el := xmlquery.FindOne(doc, "//Query/Filter/PropertyIsLike")
	if el == nil {
		t.Fatalf("PropertyIsLike missing:\n%s", d)
	}
	want := map[string]string{"wildCard": "*", "singleChar": ".", "escapeChar": "!", "matchCase": "false"}
	for k, v := range want {
		if got := el.SelectAttr(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
	if got := xmlquery.FindOne(el, "./PropertyName").InnerText(); got != "city" {
		t.Errorf("PropertyName = %q", got)
	}
	if got := xmlquery.FindOne(el, "./Literal").InnerText(); got != "*Berlin*" {
		t.Errorf("Literal = %q", got)
	}
	if !strings.Contains(d.String(), `<Filter xmlns="`+NamespaceOGC+`">`) {
		t.Errorf("filter namespace missing:\n%s", d)
	}
}

func TestWriteGetFeature_OrFilter(t *testing.T) {
	eq, _ := filter.NewEqualTo("code", "X1", true)
	like, _ := filter.NewLike("name", "*X1*", "*", ".", "!", false)
	or, _ := filter.NewOr(eq, like)
	opts := baseOptions()
	opts.Filter = or

	d, err := WriteGetFeature(opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := parseXML(t, d)

	children := xmlquery.Find(doc, "//Filter/Or/*")
	if len(children) != 2 {
		t.Fatalf("or children = %d, want 2", len(children))
	}
	if children[0].Data != "PropertyIsEqualTo" || children[1].Data != "PropertyIsLike" {
		t.Errorf("children = %s, %s", children[0].Data, children[1].Data)
	}
	if got := children[0].SelectAttr("matchCase"); got != "true" {
		t.Errorf("equal matchCase = %q", got)
	}
	if got := xmlquery.FindOne(children[0], "./Literal").InnerText(); got != "X1" {
		t.Errorf("equal literal = %q", got)
	}
}

func TestWriteGetFeature_EscapesText(t *testing.T) {
	like, _ := filter.NewLike("name", "*a<b&c*", "*", ".", "!", false)
	opts := baseOptions()
	opts.Filter = like

	d, err := WriteGetFeature(opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := parseXML(t, d)
	if got := xmlquery.FindOne(doc, "//Literal").InnerText(); got != "*a<b&c*" {
		t.Errorf("Literal = %q", got)
	}
}

func TestWriteGetFeature_Version200(t *testing.T) {
	like, _ := filter.NewLike("city", "*Berlin*", "*", ".", "!", false)
	opts := baseOptions()
	opts.Version = Version200
	opts.Filter = like

	d, err := WriteGetFeature(opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := parseXML(t, d)

	root := xmlquery.FindOne(doc, "/GetFeature")
	if got := root.SelectAttr("count"); got != "25" {
		t.Errorf("count = %q", got)
	}
	if root.SelectAttr("maxFeatures") != "" {
		t.Error("maxFeatures written for 2.0.0")
	}
	if got := xmlquery.FindOne(doc, "//Query").SelectAttr("typeNames"); got != "geo:cities" {
		t.Errorf("typeNames = %q", got)
	}
	if xmlquery.FindOne(doc, "//PropertyIsLike/ValueReference") == nil {
		t.Errorf("ValueReference missing:\n%s", d)
	}
	s := d.String()
	if !strings.Contains(s, NamespaceWFS200) || !strings.Contains(s, NamespaceFES200) {
		t.Errorf("2.0 namespaces missing:\n%s", s)
	}
	if d.Version() != Version200 {
		t.Errorf("Version() = %q", d.Version())
	}
}

func TestWriteGetFeature_InvalidOptions(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *Options)
		wantErr string
	}{
		{"unknown version", func(o *Options) { o.Version = "1.0.0" }, "unsupported wfs version"},
		{"missing type", func(o *Options) { o.TypeName = "" }, "type name is required"},
		{"foreign type", func(o *Options) { o.TypeName = "lakes" }, "not among feature types"},
		{"zero max", func(o *Options) { o.MaxFeatures = intPtr(0) }, "max features must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := baseOptions()
			tt.mutate(&opts)
			_, err := WriteGetFeature(opts)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestMarshalFilter(t *testing.T) {
	eq, _ := filter.NewEqualTo("code", "X1", true)

	b, err := MarshalFilter(eq, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<Filter xmlns="http://www.opengis.net/ogc"><PropertyIsEqualTo matchCase="true">` +
		`<PropertyName>code</PropertyName><Literal>X1</Literal></PropertyIsEqualTo></Filter>`
	if string(b) != want {
		t.Errorf("got  %s\nwant %s", b, want)
	}

	if _, err := MarshalFilter(eq, "3.0"); err == nil {
		t.Error("expected error for unknown version")
	}
}
