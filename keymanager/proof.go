package keymanager

import (
	"encoding/json"
	"fmt"

	"github.com/opd-ai/keybind/crypto"
	"github.com/opd-ai/keybind/errdefs"
	"github.com/opd-ai/keybind/interfaces"
)

// IdentityProof asserts that Identity controls ExchangePubKey. Signature is
// produced by the identity's external signer over the raw key bytes.
type IdentityProof struct {
	Identity       interfaces.Identity `json:"identity"`
	ExchangePubKey crypto.HexBytes     `json:"exchange_pub_key"`
	Signature      crypto.HexBytes     `json:"signature"`
}

// missingField names the first empty field, or returns "".
func (p IdentityProof) missingField() string {
	switch {
	case p.Identity == "":
		return "identity"
	case len(p.ExchangePubKey) == 0:
		return "exchange_pub_key"
	case len(p.Signature) == 0:
		return "signature"
	}
	return ""
}

// Marshal encodes the proof as JSON.
func (p IdentityProof) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

// UnmarshalIdentityProof decodes a proof produced by Marshal.
func UnmarshalIdentityProof(data []byte) (IdentityProof, error) {
	var p IdentityProof
	if err := json.Unmarshal(data, &p); err != nil {
		return IdentityProof{}, fmt.Errorf("%w: identity proof: %v", errdefs.ErrMalformedInput, err)
	}
	return p, nil
}
