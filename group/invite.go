package group

import (
	"encoding/json"
	"fmt"

	"github.com/opd-ai/keybind/crypto"
	"github.com/opd-ai/keybind/errdefs"
	"github.com/opd-ai/keybind/interfaces"
)

// Invite carries a group key wrapped under the pairwise secret between the
// owner and one recipient.
type Invite struct {
	GroupID       string              `json:"group_id"`
	WrappedKey    crypto.HexBytes     `json:"wrapped_key"`
	OwnerIdentity interfaces.Identity `json:"owner_identity"`
}

func (inv Invite) validate() error {
	switch {
	case inv.GroupID == "":
		return fmt.Errorf("%w: invite missing group_id", errdefs.ErrMalformedInput)
	case len(inv.WrappedKey) == 0:
		return fmt.Errorf("%w: invite missing wrapped_key", errdefs.ErrMalformedInput)
	case inv.OwnerIdentity == "":
		return fmt.Errorf("%w: invite missing owner_identity", errdefs.ErrMalformedInput)
	}
	return nil
}

// Marshal encodes the invite as JSON.
func (inv Invite) Marshal() ([]byte, error) {
	return json.Marshal(inv)
}

// UnmarshalInvite decodes an invite produced by Marshal.
func UnmarshalInvite(data []byte) (Invite, error) {
	var inv Invite
	if err := json.Unmarshal(data, &inv); err != nil {
		return Invite{}, fmt.Errorf("%w: invite: %v", errdefs.ErrMalformedInput, err)
	}
	return inv, nil
}
