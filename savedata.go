package keybind

import (
	"encoding/json"
	"fmt"

	"github.com/opd-ai/keybind/crypto"
	"github.com/opd-ai/keybind/errdefs"
	"github.com/opd-ai/keybind/group"
	"github.com/opd-ai/keybind/interfaces"
)

// StateVersion is the current SerializedState format version.
const StateVersion = 1

// SerializedState is the complete local state of a User. It holds the raw
// exchange scalar and group keys and must only leave the process encrypted.
type SerializedState struct {
	Version       int                     `json:"version"`
	Owner         interfaces.Identity     `json:"owner"`
	Bindings      []SerializedBinding     `json:"bindings"`
	Groups        []group.SerializedGroup `json:"groups"`
	PrivateScalar crypto.HexBytes         `json:"private_scalar"`
	Timestamp     int64                   `json:"timestamp"`
}

// SerializedBinding is one trust-store entry.
type SerializedBinding struct {
	Identity       interfaces.Identity `json:"identity"`
	ExchangePubKey crypto.HexBytes     `json:"exchange_pub_key"`
}

// Serialize encodes the state as JSON.
func (s *SerializedState) Serialize() ([]byte, error) {
	return json.Marshal(s)
}

// LoadSerializedState decodes and validates a state produced by Serialize.
func LoadSerializedState(data []byte) (*SerializedState, error) {
	var state SerializedState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%w: serialized state: %v", errdefs.ErrMalformedInput, err)
	}
	if state.Version != StateVersion {
		return nil, fmt.Errorf("%w: unsupported state version %d (expected %d)", errdefs.ErrMalformedInput, state.Version, StateVersion)
	}
	if len(state.PrivateScalar) == 0 {
		return nil, fmt.Errorf("%w: serialized state has no private scalar", errdefs.ErrMalformedInput)
	}
	return &state, nil
}

// bindingMap converts the binding list to the key manager's form. Identities
// that differ only in case are the same identity and count as duplicates.
func (s *SerializedState) bindingMap() (map[interfaces.Identity][]byte, error) {
	out := make(map[interfaces.Identity][]byte, len(s.Bindings))
	seen := make(map[interfaces.Identity]struct{}, len(s.Bindings))
	for _, b := range s.Bindings {
		norm := b.Identity.Normalize()
		if _, dup := seen[norm]; dup {
			return nil, fmt.Errorf("%w: identity %s appears twice", errdefs.ErrConflict, b.Identity)
		}
		seen[norm] = struct{}{}
		out[b.Identity] = b.ExchangePubKey
	}
	return out, nil
}

// wipe zeroes the secret material held by the state.
func (s *SerializedState) wipe() {
	crypto.ZeroBytes(s.PrivateScalar)
	for _, g := range s.Groups {
		crypto.ZeroBytes(g.SymmetricKey)
	}
}
