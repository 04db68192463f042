package group

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/opd-ai/keybind/errdefs"
)

// PayloadKind is the leading tag byte of every group plaintext.
type PayloadKind byte

const (
	// PayloadText marks a UTF-8 string payload
	PayloadText PayloadKind = 0x01
	// PayloadJSON marks a JSON-encoded structured payload
	PayloadJSON PayloadKind = 0x02
	// PayloadBinary marks a raw byte payload
	PayloadBinary PayloadKind = 0x03
)

// String returns the kind name for logging.
func (k PayloadKind) String() string {
	switch k {
	case PayloadText:
		return "text"
	case PayloadJSON:
		return "json"
	case PayloadBinary:
		return "binary"
	default:
		return fmt.Sprintf("unknown(0x%02x)", byte(k))
	}
}

// Envelope is a decrypted group payload before decoding.
type Envelope struct {
	Kind PayloadKind
	Body []byte
}

// sealEnvelope tags payload with its kind. Strings are text, byte slices are
// binary, everything else goes through encoding/json.
func sealEnvelope(payload any) ([]byte, PayloadKind, error) {
	var (
		kind PayloadKind
		body []byte
	)

	switch v := payload.(type) {
	case string:
		kind, body = PayloadText, []byte(v)
	case []byte:
		kind, body = PayloadBinary, v
	case json.RawMessage:
		if !json.Valid(v) {
			return nil, 0, fmt.Errorf("%w: invalid raw JSON payload", errdefs.ErrMalformedInput)
		}
		kind, body = PayloadJSON, v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: cannot encode payload: %v", errdefs.ErrMalformedInput, err)
		}
		kind, body = PayloadJSON, encoded
	}

	out := make([]byte, 1+len(body))
	out[0] = byte(kind)
	copy(out[1:], body)
	return out, kind, nil
}

// openEnvelope splits a decrypted plaintext into tag and body.
func openEnvelope(plaintext []byte) (Envelope, error) {
	if len(plaintext) == 0 {
		return Envelope{}, fmt.Errorf("%w: empty group payload", errdefs.ErrMalformedInput)
	}

	kind := PayloadKind(plaintext[0])
	switch kind {
	case PayloadText, PayloadJSON, PayloadBinary:
	default:
		return Envelope{}, fmt.Errorf("%w: unknown payload kind %s", errdefs.ErrMalformedInput, kind)
	}
	return Envelope{Kind: kind, Body: plaintext[1:]}, nil
}

// Value decodes the envelope into a string, a []byte or a generic JSON value.
// JSON numbers are returned as json.Number.
func (e Envelope) Value() (any, error) {
	switch e.Kind {
	case PayloadText:
		return string(e.Body), nil
	case PayloadBinary:
		return append([]byte{}, e.Body...), nil
	case PayloadJSON:
		// Numbers decode as json.Number so integers beyond 2^53 survive.
		dec := json.NewDecoder(bytes.NewReader(e.Body))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: structured payload: %v", errdefs.ErrMalformedInput, err)
		}
		if _, err := dec.Token(); err != io.EOF {
			return nil, fmt.Errorf("%w: trailing data after structured payload", errdefs.ErrMalformedInput)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w: unknown payload kind %s", errdefs.ErrMalformedInput, e.Kind)
	}
}

// Into decodes a structured envelope into v.
func (e Envelope) Into(v any) error {
	if e.Kind != PayloadJSON {
		return fmt.Errorf("%w: payload is %s, not json", errdefs.ErrMalformedInput, e.Kind)
	}
	if err := json.Unmarshal(e.Body, v); err != nil {
		return fmt.Errorf("%w: structured payload: %v", errdefs.ErrMalformedInput, err)
	}
	return nil
}
