package payload

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Marshal encodes a value as CBOR
func Marshal(v interface{}) ([]byte, error) {
	data, err := cbor.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cbor: %w", err)
	}
	return data, nil
}

// Unmarshal decodes CBOR data into v
func Unmarshal(data []byte, v interface{}) error {
	if err := cbor.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode cbor: %w", err)
	}
	return nil
}
