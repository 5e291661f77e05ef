// file: fpmine/codec/json.go
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// MaxBody bounds request bodies read by ReadJSON.
const MaxBody = 32 << 20

// Marshal encodes v as one JSON document terminated by a newline, the shape
// written to HTTP responses.
func Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	return append(b, '\n'), nil
}

// Unmarshal decodes data into v, rejecting unknown fields so typos in
// requests surface instead of being ignored.
func Unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode %T: %w", v, err)
	}
	if dec.More() {
		return fmt.Errorf("decode %T: trailing data", v)
	}
	return nil
}

// ReadJSON reads at most MaxBody bytes from r and decodes them into v.
func ReadJSON(r io.Reader, v any) error {
	data, err := io.ReadAll(io.LimitReader(r, MaxBody+1))
	if err != nil {
		return err
	}
	if len(data) > MaxBody {
		return fmt.Errorf("decode %T: body exceeds %d bytes", v, MaxBody)
	}
	return Unmarshal(data, v)
}

// Encode validates m and encodes it for the wire.
func Encode(m *ItemsetMessage) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// Decode parses and validates a wire message.
func Decode(data []byte) (*ItemsetMessage, error) {
	var m ItemsetMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode itemset message: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
