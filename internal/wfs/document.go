package wfs

import (
	"fmt"

	"github.com/beevik/etree"
)

const (
	rootTag  = "GetFeature"
	queryTag = "Query"
)

// Document is a GetFeature request document. It is mutable: AppendQuery moves
// query blocks into it, so a Document must have a single owner.
type Document struct {
	doc *etree.Document
}

func newDocument(root *etree.Element) *Document {
	doc := etree.NewDocument()
	doc.SetRoot(root)
	return &Document{doc: doc}
}

// Parse reads a GetFeature document.
func Parse(data []byte) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse getfeature: %w", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != rootTag {
		return nil, fmt.Errorf("parse getfeature: root element is not %s", rootTag)
	}
	return &Document{doc: doc}, nil
}

// Version returns the protocol version declared on the root element.
func (d *Document) Version() string {
	return d.doc.Root().SelectAttrValue("version", "")
}

// Query returns the first query block, if any.
func (d *Document) Query() (*etree.Element, bool) {
	q := d.doc.Root().SelectElement(queryTag)
	return q, q != nil
}

// Queries returns all query blocks in document order.
func (d *Document) Queries() []*etree.Element {
	return d.doc.Root().SelectElements(queryTag)
}

// AppendQuery moves q to the end of this document's query blocks.
// q is detached from any document it belonged to before.
func (d *Document) AppendQuery(q *etree.Element) {
	d.doc.Root().AddChild(q)
}

// TypeNames returns the qualified type name of every query block in order.
func (d *Document) TypeNames() []string {
	queries := d.Queries()
	names := make([]string, 0, len(queries))
	for _, q := range queries {
		name := q.SelectAttrValue("typeName", "")
		if name == "" {
			name = q.SelectAttrValue("typeNames", "")
		}
		names = append(names, name)
	}
	return names
}

// Indent reformats the document with the given number of spaces per level.
func (d *Document) Indent(spaces int) {
	d.doc.Indent(spaces)
}

// Bytes serializes the document.
func (d *Document) Bytes() ([]byte, error) {
	b, err := d.doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("write getfeature: %w", err)
	}
	return b, nil
}

func (d *Document) String() string {
	s, err := d.doc.WriteToString()
	if err != nil {
		return ""
	}
	return s
}
