package crypto

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/opd-ai/keybind/errdefs"
)

// HexBytes is a byte slice that marshals to and from hex text. It is used
// for key material in JSON boundary formats.
type HexBytes []byte

// MarshalText implements encoding.TextMarshaler.
func (h HexBytes) MarshalText() ([]byte, error) {
	out := make([]byte, hex.EncodedLen(len(h)))
	hex.Encode(out, h)
	return out, nil
}

// UnmarshalText implements encoding.TextUnmarshaler. A 0x prefix is accepted.
func (h *HexBytes) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(string(text), "0x")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("%w: invalid hex: %v", errdefs.ErrMalformedInput, err)
	}
	*h = raw
	return nil
}

// String returns the hex encoding.
func (h HexBytes) String() string {
	return hex.EncodeToString(h)
}
