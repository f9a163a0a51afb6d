package attribute

import "fmt"

// Type is the declared data type of a searchable attribute.
type Type string

// Attribute type constants.
const (
	Number Type = "number"
	Int    Type = "int"
	String Type = "string"
)

// IsValid checks if the type is one of the supported values.
func (t Type) IsValid() bool {
	return t == Number || t == Int || t == String
}

// IsNumeric reports whether the type only accepts numeric literals.
func (t Type) IsNumeric() bool {
	return t == Number || t == Int
}

// Detail describes one searchable field of a feature type.
type Detail struct {
	Name        string `json:"attribute_name" yaml:"attribute_name" validate:"required"`
	Type        Type   `json:"type" yaml:"type" validate:"required,oneof=number int string"`
	ExactSearch bool   `json:"exact_search,omitempty" yaml:"exact_search"`
	MatchCase   bool   `json:"match_case,omitempty" yaml:"match_case"`
}

// New validates and creates a Detail.
func New(name string, t Type, exactSearch, matchCase bool) (Detail, error) {
	d := Detail{Name: name, Type: t, ExactSearch: exactSearch, MatchCase: matchCase}
	if err := d.Validate(); err != nil {
		return Detail{}, err
	}
	return d, nil
}

// Validate checks that the attribute has a name and a known type.
func (d Detail) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("attribute name is required")
	}
	if !d.Type.IsValid() {
		return fmt.Errorf("invalid attribute type %q for %q", d.Type, d.Name)
	}
	return nil
}

// ValidateAll validates every detail, reporting the first failure with its index.
func ValidateAll(details []Detail) error {
	for i, d := range details {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("attribute_details[%d]: %w", i, err)
		}
	}
	return nil
}

// Accepts reports whether term may be compared against this attribute.
// Numeric attributes reject any term containing a character other than a digit or '.'.
func (d Detail) Accepts(term string) bool {
	if !d.Type.IsNumeric() {
		return true
	}
	return IsNumericLiteral(term)
}

// IsNumericLiteral reports whether s consists only of ASCII digits and dots.
// The empty string qualifies: it contains no offending character.
func IsNumericLiteral(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '.' && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// Names returns the attribute names in declaration order.
func Names(details []Detail) []string {
	names := make([]string, len(details))
	for i, d := range details {
		names[i] = d.Name
	}
	return names
}
