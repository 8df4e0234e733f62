package record

import (
	"encoding/json"

	"github.com/Velocidex/ordereddict"

	"github.com/leengari/mini-datagrid/internal/util/types"
)

// Record is a single dynamic row materialized from JSON.
// Field keys keep their insertion order so loaded datasets render
// their columns in a stable order.
type Record struct {
	dict *ordereddict.Dict
}

// New creates an empty Record.
func New() Record {
	return Record{dict: ordereddict.NewDict()}
}

// Set stores a field value and returns the record for chaining.
func (r Record) Set(key string, value interface{}) Record {
	if r.dict == nil {
		r.dict = ordereddict.NewDict()
	}
	r.dict.Set(key, value)
	return r
}

// Get returns the value for key and whether it was present.
func (r Record) Get(key string) (interface{}, bool) {
	if r.dict == nil {
		return nil, false
	}
	return r.dict.Get(key)
}

// Keys returns the field names in insertion order.
func (r Record) Keys() []string {
	if r.dict == nil {
		return nil
	}
	return r.dict.Keys()
}

// Len returns the number of fields.
func (r Record) Len() int {
	if r.dict == nil {
		return 0
	}
	return r.dict.Len()
}

// Copy creates a copy of the record to prevent mutation of the original.
// Field values are copied shallowly, same as the cell values themselves
// are shared with the caller's dataset.
func (r Record) Copy() Record {
	out := New()
	for _, key := range r.Keys() {
		if val, ok := r.Get(key); ok {
			out.dict.Set(key, val)
		}
	}
	return out
}

// ID returns the record's "id" field as a string.
// Returns false when the field is missing or empty.
func (r Record) ID() (string, bool) {
	val, ok := r.Get("id")
	if !ok {
		return "", false
	}
	id := types.Stringify(val)
	return id, id != ""
}

// UnmarshalJSON implements json.Unmarshaler, preserving key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	dict := ordereddict.NewDict()
	if err := json.Unmarshal(data, dict); err != nil {
		return err
	}
	r.dict = dict
	return nil
}

// MarshalJSON implements json.Marshaler, preserving key order.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.dict == nil {
		return json.Marshal(ordereddict.NewDict())
	}
	return json.Marshal(r.dict)
}

// Identity is the identifier accessor used when wiring Records into a grid.
// Records without an "id" field yield the empty string.
func Identity(r Record) string {
	id, _ := r.ID()
	return id
}

// Field builds a column value extractor for the named field.
func Field(key string) func(Record) (interface{}, bool) {
	return func(r Record) (interface{}, bool) {
		return r.Get(key)
	}
}
