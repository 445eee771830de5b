package expenses

import (
	"bytes"
	"encoding/json"
)

type Field struct {
	Name  string
	Value string
}

// Record is a single worksheet row as an ordered list of column name/value pairs. It
// encodes to JSON as an object with the keys in column order.
type Record []Field

// Get returns the value of the named column, or "" if the record has no such column.
func (r Record) Get(name string) string {
	for _, f := range r {
		if f.Name == name {
			return f.Value
		}
	}

	return ""
}

func (r Record) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer

	b.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			b.WriteByte(',')
		}

		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}

		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}

		b.Write(key)
		b.WriteByte(':')
		b.Write(value)
	}
	b.WriteByte('}')

	return b.Bytes(), nil
}
