package lang

import (
	"bytes"
	"encoding/json"

	"github.com/goccy/go-yaml"
)

// MarshalJSON implements json.Marshaler for Document. The object is
// built by hand because encoding/json sorts map keys, and entry order
// must follow the source document.
func (doc *Document) MarshalJSON() ([]byte, error) {
	pairs := make([]Pair, len(doc.Entries))
	for i, entry := range doc.Entries {
		pairs[i] = Pair{Key: entry.Name, Value: entry.Value.Native()}
	}

	return marshalObject(pairs)
}

// marshalObject encodes ordered pairs as one JSON object.
func marshalObject(pairs []Pair) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, pair := range pairs {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(pair.Key)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')

		value, err := marshalValue(pair.Value)
		if err != nil {
			return nil, err
		}

		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// marshalValue encodes one member value, recursing through ordered
// pairs and slices. Anything else defers to encoding/json.
func marshalValue(v any) ([]byte, error) {
	switch t := v.(type) {
	case []Pair:
		return marshalObject(t)

	case []any:
		var buf bytes.Buffer

		buf.WriteByte('[')

		for i, elem := range t {
			if i > 0 {
				buf.WriteByte(',')
			}

			b, err := marshalValue(elem)
			if err != nil {
				return nil, err
			}

			buf.Write(b)
		}

		buf.WriteByte(']')

		return buf.Bytes(), nil

	default:
		return json.Marshal(v)
	}
}

// ToMapSlice converts the document to an ordered yaml.MapSlice for
// YAML encoding.
func (doc *Document) ToMapSlice() yaml.MapSlice {
	out := make(yaml.MapSlice, len(doc.Entries))
	for i, entry := range doc.Entries {
		out[i] = yaml.MapItem{
			Key:   entry.Name,
			Value: yamlValue(entry.Value.Native()),
		}
	}

	return out
}

// yamlValue converts ordered pairs and slices into their yaml
// counterparts, recursively.
func yamlValue(v any) any {
	switch t := v.(type) {
	case []Pair:
		out := make(yaml.MapSlice, len(t))
		for i, pair := range t {
			out[i] = yaml.MapItem{Key: pair.Key, Value: yamlValue(pair.Value)}
		}

		return out

	case []any:
		out := make([]any, len(t))
		for i, elem := range t {
			out[i] = yamlValue(elem)
		}

		return out

	default:
		return v
	}
}
