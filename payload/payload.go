package payload

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind identifies the result variant
type Kind string

const (
	KindImage Kind = "image"
	KindBlob  Kind = "blob"
	KindText  Kind = "text"
)

// Result is a backend produced payload; exactly one of Image, Blob, Text is set according to Kind.
type Result struct {
	Kind  Kind   `json:"kind" cbor:"1,keyasint"`
	Image *Image `json:"image,omitempty" cbor:"2,keyasint,omitempty"`
	Blob  []byte `json:"blob,omitempty" cbor:"3,keyasint,omitempty"`
	Text  string `json:"text,omitempty" cbor:"4,keyasint,omitempty"`
}

// ErrUnknownPayload is returned when a raw payload does not match any known variant.
var ErrUnknownPayload = errors.New("payload: unknown result variant")

// Decoder converts a raw JSON payload into a Result
type Decoder func(raw json.RawMessage) (*Result, error)

// NewImage creates an image result
func NewImage(image *Image) *Result {
	return &Result{Kind: KindImage, Image: image}
}

// NewBlob creates a blob result
func NewBlob(data []byte) *Result {
	return &Result{Kind: KindBlob, Blob: data}
}

// NewText creates a text result
func NewText(text string) *Result {
	return &Result{Kind: KindText, Text: text}
}

// Value returns the wire representation of the result
func (r *Result) Value() interface{} {
	switch r.Kind {
	case KindImage:
		return r.Image
	case KindBlob:
		return r.Blob
	default:
		return r.Text
	}
}

// DecodeImage decodes a vtk.js image payload
func DecodeImage(raw json.RawMessage) (*Result, error) {
	image := &Image{}
	if err := json.Unmarshal(raw, image); err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if err := image.Validate(); err != nil {
		return nil, err
	}
	return NewImage(image), nil
}

// DecodeBlob decodes a base64 encoded binary payload
func DecodeBlob(raw json.RawMessage) (*Result, error) {
	var data []byte
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode blob: %w", err)
	}
	return NewBlob(data), nil
}

// DecodeText decodes a text payload
func DecodeText(raw json.RawMessage) (*Result, error) {
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return nil, fmt.Errorf("failed to decode text: %w", err)
	}
	return NewText(text), nil
}

// DecodeAny detects the variant: JSON objects are images, JSON strings are text.
func DecodeAny(raw json.RawMessage) (*Result, error) {
	for _, c := range raw {
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		case '{':
			return DecodeImage(raw)
		case '"':
			return DecodeText(raw)
		}
		break
	}
	return nil, ErrUnknownPayload
}

// DecodeImageOrBlob accepts either a vtk.js image object or a base64 encoded file (e.g. .nii.gz).
func DecodeImageOrBlob(raw json.RawMessage) (*Result, error) {
	for _, c := range raw {
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		case '{':
			return DecodeImage(raw)
		case '"':
			return DecodeBlob(raw)
		}
		break
	}
	return nil, ErrUnknownPayload
}
