package valueobject

import (
	"sort"
)

// InputRecord is an immutable mapping from attribute name to raw value. One
// record is built per scoring request.
type InputRecord struct {
	values map[string]AttributeValue
}

// NewInputRecord copies values into a new record. Zero values are dropped so
// that they are reported as missing.
func NewInputRecord(values map[string]AttributeValue) InputRecord {
	copied := make(map[string]AttributeValue, len(values))
	for k, v := range values {
		if v.IsZero() {
			continue
		}
		copied[k] = v
	}
	return InputRecord{values: copied}
}

// Get returns the raw value for name.
func (r InputRecord) Get(name string) (AttributeValue, bool) {
	v, ok := r.values[name]
	return v, ok
}

// With returns a copy of the record with name set to v.
func (r InputRecord) With(name string, v AttributeValue) InputRecord {
	copied := make(map[string]AttributeValue, len(r.values)+1)
	for k, existing := range r.values {
		copied[k] = existing
	}
	copied[name] = v
	return NewInputRecord(copied)
}

// Without returns a copy of the record with name removed.
func (r InputRecord) Without(name string) InputRecord {
	copied := make(map[string]AttributeValue, len(r.values))
	for k, existing := range r.values {
		if k != name {
			copied[k] = existing
		}
	}
	return InputRecord{values: copied}
}

// Names returns the attribute names in sorted order.
func (r InputRecord) Names() []string {
	names := make([]string, 0, len(r.values))
	for k := range r.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of attributes present.
func (r InputRecord) Len() int { return len(r.values) }

// Values returns a copy of the underlying map.
func (r InputRecord) Values() map[string]AttributeValue {
	copied := make(map[string]AttributeValue, len(r.values))
	for k, v := range r.values {
		copied[k] = v
	}
	return copied
}
