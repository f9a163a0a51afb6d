package wfs

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/kailas-cloud/wfsquery/internal/domain/search/filter"
)

// dialect captures the element and attribute names that differ between versions.
type dialect struct {
	wfsNS          string
	schemaLocation string
	filterNS       string
	typeNameAttr   string
	maxAttr        string
	valueRef       string
}

var dialects = map[string]dialect{
	Version110: {
		wfsNS:          NamespaceWFS110,
		schemaLocation: schemaLocation110,
		filterNS:       NamespaceOGC,
		typeNameAttr:   "typeName",
		maxAttr:        "maxFeatures",
		valueRef:       "PropertyName",
	},
	Version200: {
		wfsNS:          NamespaceWFS200,
		schemaLocation: schemaLocation200,
		filterNS:       NamespaceFES200,
		typeNameAttr:   "typeNames",
		maxAttr:        "count",
		valueRef:       "ValueReference",
	},
}

// WriteGetFeature writes a GetFeature document with one Query block for opts.TypeName.
func WriteGetFeature(opts Options) (*Document, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("getfeature options: %w", err)
	}
	version := opts.version()
	d := dialects[version]

	root := etree.NewElement(rootTag)
	root.CreateAttr("xmlns", d.wfsNS)
	root.CreateAttr("service", "WFS")
	root.CreateAttr("version", version)
	if opts.OutputFormat != "" {
		root.CreateAttr("outputFormat", opts.OutputFormat)
	}
	if opts.MaxFeatures != nil {
		root.CreateAttr(d.maxAttr, strconv.Itoa(*opts.MaxFeatures))
	}
	root.CreateAttr("xmlns:xsi", NamespaceXSI)
	root.CreateAttr("xsi:schemaLocation", d.schemaLocation)

	q, err := writeQuery(&opts, d)
	if err != nil {
		return nil, err
	}
	root.AddChild(q)

	return newDocument(root), nil
}

func writeQuery(opts *Options, d dialect) (*etree.Element, error) {
	q := etree.NewElement(queryTag)
	q.CreateAttr(d.typeNameAttr, opts.qualifiedTypeName())
	if opts.SrsName != "" {
		q.CreateAttr("srsName", opts.SrsName)
	}
	if opts.FeaturePrefix != "" && opts.FeatureNS != "" {
		q.CreateAttr("xmlns:"+opts.FeaturePrefix, opts.FeatureNS)
	}

	for _, name := range opts.PropertyNames {
		q.CreateElement("PropertyName").SetText(name)
	}

	if opts.Filter != nil {
		f, err := filterElement(opts.Filter, d)
		if err != nil {
			return nil, err
		}
		q.AddChild(f)
	}
	return q, nil
}

// MarshalFilter encodes expr as a standalone Filter element for the given version.
func MarshalFilter(expr filter.Expression, version string) ([]byte, error) {
	if version == "" {
		version = Version110
	}
	d, ok := dialects[version]
	if !ok {
		return nil, fmt.Errorf("unsupported wfs version %q", version)
	}
	f, err := filterElement(expr, d)
	if err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	doc.SetRoot(f)
	b, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("write filter: %w", err)
	}
	return b, nil
}

func filterElement(expr filter.Expression, d dialect) (*etree.Element, error) {
	f := etree.NewElement("Filter")
	f.CreateAttr("xmlns", d.filterNS)
	if err := encodeExpression(f, expr, d); err != nil {
		return nil, err
	}
	return f, nil
}

func encodeExpression(parent *etree.Element, expr filter.Expression, d dialect) error {
	switch e := expr.(type) {
	case filter.EqualTo:
		el := parent.CreateElement("PropertyIsEqualTo")
		el.CreateAttr("matchCase", strconv.FormatBool(e.MatchCase()))
		el.CreateElement(d.valueRef).SetText(e.Property())
		el.CreateElement("Literal").SetText(e.Literal())
	case filter.Like:
		el := parent.CreateElement("PropertyIsLike")
		el.CreateAttr("wildCard", e.WildCard())
		el.CreateAttr("singleChar", e.SingleChar())
		el.CreateAttr("escapeChar", e.EscapeChar())
		el.CreateAttr("matchCase", strconv.FormatBool(e.MatchCase()))
		el.CreateElement(d.valueRef).SetText(e.Property())
		el.CreateElement("Literal").SetText(e.Pattern())
	case filter.Or:
		el := parent.CreateElement("Or")
		for _, c := range e.Conditions() {
			if err := encodeExpression(el, c, d); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unsupported filter expression %T", expr)
	}
	return nil
}

// Writer adapts WriteGetFeature to a serializer value.
type Writer struct{}

// WriteGetFeature calls the package-level WriteGetFeature.
func (Writer) WriteGetFeature(opts Options) (*Document, error) {
	return WriteGetFeature(opts)
}
