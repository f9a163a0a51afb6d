package request

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kailas-cloud/wfsquery/internal/domain/search/attribute"
)

// Supported WFS protocol versions.
const (
	Version110     = "1.1.0"
	Version200     = "2.0.0"
	DefaultVersion = Version110
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// SearchConfig is the WFS search surface across one or more feature types
// sharing the same attribute schema.
type SearchConfig struct {
	FeatureNS        string             `json:"feature_ns" yaml:"feature_ns" validate:"required"`
	FeaturePrefix    string             `json:"feature_prefix" yaml:"feature_prefix" validate:"required"`
	FeatureTypes     []string           `json:"feature_types" yaml:"feature_types" validate:"dive,required"`
	// GeometryName is reserved for spatial filters; documents do not carry it yet.
	GeometryName     string             `json:"geometry_name,omitempty" yaml:"geometry_name"`
	MaxFeatures      *int               `json:"max_features,omitempty" yaml:"max_features" validate:"omitempty,gt=0"`
	OutputFormat     string             `json:"output_format,omitempty" yaml:"output_format"`
	SrsName          string             `json:"srs_name,omitempty" yaml:"srs_name"`
	Version          string             `json:"version,omitempty" yaml:"version" validate:"omitempty,oneof=1.1.0 2.0.0"`
	AttributeDetails []attribute.Detail `json:"attribute_details" yaml:"attribute_details" validate:"dive"`
}

// Validate will check whether the config fulfills the structural constraints.
func (c *SearchConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("validate search config: %w", err)
	}
	errStrs := make([]string, 0, len(errs))
	for _, e := range errs {
		switch e.Tag() {
		case "required":
			errStrs = append(errStrs, fmt.Sprintf("%s is required", e.Namespace()))
		case "oneof":
			errStrs = append(errStrs, fmt.Sprintf("%q for %s not recognized, only support %q",
				e.Value(), e.Namespace(), e.Param()))
		case "gt":
			errStrs = append(errStrs, fmt.Sprintf("%s must be greater than %s", e.Namespace(), e.Param()))
		default:
			errStrs = append(errStrs, e.Error())
		}
	}
	return errors.New(strings.Join(errStrs, " and "))
}

// WFSVersion returns the configured protocol version or the default.
func (c *SearchConfig) WFSVersion() string {
	if c.Version == "" {
		return DefaultVersion
	}
	return c.Version
}

// PropertyNames returns the projected attribute names in declaration order.
func (c *SearchConfig) PropertyNames() []string {
	return attribute.Names(c.AttributeDetails)
}

// HasFeatureTypes reports whether there is anything to request.
func (c *SearchConfig) HasFeatureTypes() bool {
	return len(c.FeatureTypes) > 0
}
