// Package types contains shared types used across multiple packages to avoid import cycles.
package types

import (
	"bytes"
	"encoding/json"

	"github.com/elliotchance/orderedmap/v2"
)

// Record represents a single item returned by query execution. Field order
// follows the column order of the corpus, which is why a plain map is not
// enough here.
type Record struct {
	fields *orderedmap.OrderedMap[string, interface{}]
}

// NewRecord creates an empty Record.
func NewRecord() *Record {
	return &Record{fields: orderedmap.NewOrderedMap[string, interface{}]()}
}

// Set stores a field value, appending the field if it is new.
func (r *Record) Set(field string, value interface{}) {
	r.fields.Set(field, value)
}

// Get returns a field value and whether the field exists.
func (r *Record) Get(field string) (interface{}, bool) {
	return r.fields.Get(field)
}

// Len returns the number of fields in the record.
func (r *Record) Len() int {
	return r.fields.Len()
}

// Fields returns the field names in insertion order.
func (r *Record) Fields() []string {
	return r.fields.Keys()
}

// Clone returns a deep copy of the record's field ordering. Values are copied
// by assignment; they are treated as immutable scalars everywhere in this
// codebase.
func (r *Record) Clone() *Record {
	out := NewRecord()
	for el := r.fields.Front(); el != nil; el = el.Next() {
		out.Set(el.Key, el.Value)
	}
	return out
}

// MarshalJSON serializes the record as a JSON object preserving field order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for el := r.fields.Front(); el != nil; el = el.Next() {
		if !first {
			buf.WriteByte(',')
		}
		first = false

		key, err := json.Marshal(el.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		value, err := json.Marshal(el.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ResultSet is an ordered sequence of records produced by a single query
// execution. It is never persisted across invocations.
type ResultSet []*Record

// Clone returns a set whose records are independent copies.
func (s ResultSet) Clone() ResultSet {
	out := make(ResultSet, len(s))
	for i, rec := range s {
		out[i] = rec.Clone()
	}
	return out
}
