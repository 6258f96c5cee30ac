package document

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes n as compact JSON, keeping object key order.
// HTML characters are not escaped.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := writeJSON(&buf, enc, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalIndentJSON encodes n as JSON with each level indented by indent.
func MarshalIndentJSON(n *Node, indent string) ([]byte, error) {
	compact, err := n.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, enc *json.Encoder, n *Node) error {
	switch n.Kind() {
	case KindNull:
		buf.WriteString("null")
	case KindObject:
		buf.WriteByte('{')
		for i, k := range n.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONValue(buf, enc, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, enc, n.fields[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case KindArray:
		buf.WriteByte('[')
		for i, item := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, enc, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindScalar:
		return writeJSONValue(buf, enc, n.value)
	default:
		return fmt.Errorf("document: cannot encode %s node", n.Kind())
	}
	return nil
}

// writeJSONValue encodes a scalar through enc, dropping the trailing
// newline the encoder appends.
func writeJSONValue(buf *bytes.Buffer, enc *json.Encoder, v any) error {
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("document: %w", err)
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}
