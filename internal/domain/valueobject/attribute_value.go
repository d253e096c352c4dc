package valueobject

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ValueKind distinguishes numeric from categorical raw inputs.
type ValueKind string

const (
	KindNumeric     ValueKind = "numeric"
	KindCategorical ValueKind = "categorical"
)

// ParseValueKind validates a kind name.
func ParseValueKind(s string) (ValueKind, error) {
	switch ValueKind(strings.ToLower(s)) {
	case KindNumeric:
		return KindNumeric, nil
	case KindCategorical:
		return KindCategorical, nil
	default:
		return "", fmt.Errorf("invalid value kind: %q", s)
	}
}

// AttributeValue is a single raw input: either a number or a categorical
// string. The zero value is invalid.
type AttributeValue struct {
	kind   ValueKind
	number decimal.Decimal
	text   string
}

// Numeric builds a numeric value.
func Numeric(v float64) AttributeValue {
	return AttributeValue{kind: KindNumeric, number: decimal.NewFromFloat(v)}
}

// NumericDecimal builds a numeric value from a decimal.
func NumericDecimal(d decimal.Decimal) AttributeValue {
	return AttributeValue{kind: KindNumeric, number: d}
}

// Categorical builds a categorical value.
func Categorical(s string) AttributeValue {
	return AttributeValue{kind: KindCategorical, text: s}
}

// ParseAttributeValue interprets free text: anything that parses as a number
// is numeric, everything else is categorical.
func ParseAttributeValue(s string) AttributeValue {
	trimmed := strings.TrimSpace(s)
	if d, err := decimal.NewFromString(trimmed); err == nil {
		return NumericDecimal(d)
	}
	return Categorical(s)
}

// Kind returns the value kind.
func (v AttributeValue) Kind() ValueKind { return v.kind }

// IsZero reports whether the value was never set.
func (v AttributeValue) IsZero() bool { return v.kind == "" }

// Number returns the numeric value; ok is false for categorical values.
func (v AttributeValue) Number() (decimal.Decimal, bool) {
	return v.number, v.kind == KindNumeric
}

// Text returns the categorical value; ok is false for numeric values.
func (v AttributeValue) Text() (string, bool) {
	return v.text, v.kind == KindCategorical
}

// String renders the value for logs and breakdowns.
func (v AttributeValue) String() string {
	switch v.kind {
	case KindNumeric:
		return v.number.String()
	case KindCategorical:
		return v.text
	default:
		return ""
	}
}

// MarshalJSON encodes numbers as JSON numbers and categories as strings.
func (v AttributeValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumeric:
		return []byte(v.number.String()), nil
	case KindCategorical:
		return json.Marshal(v.text)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a JSON number or string. Strings are always
// categorical so that "65" sent as text is reported as a type error rather
// than silently coerced.
func (v *AttributeValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = AttributeValue{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Categorical(s)
		return nil
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("attribute value must be a number or string: %w", err)
	}
	*v = NumericDecimal(d)
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML documents, where unquoted
// scalars that parse as numbers are numeric.
func (v *AttributeValue) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case nil:
		*v = AttributeValue{}
	case int:
		*v = NumericDecimal(decimal.NewFromInt(int64(t)))
	case int64:
		*v = NumericDecimal(decimal.NewFromInt(t))
	case uint64:
		d, err := decimal.NewFromString(fmt.Sprintf("%d", t))
		if err != nil {
			return err
		}
		*v = NumericDecimal(d)
	case float64:
		*v = Numeric(t)
	case string:
		*v = Categorical(t)
	case bool:
		*v = Categorical(fmt.Sprintf("%t", t))
	default:
		return fmt.Errorf("unsupported attribute value %T", raw)
	}
	return nil
}
