package group

import (
	"fmt"
	"sort"

	"github.com/opd-ai/keybind/crypto"
	"github.com/opd-ai/keybind/errdefs"
	"github.com/opd-ai/keybind/interfaces"
	"github.com/opd-ai/keybind/keymanager"
	"github.com/opd-ai/keybind/limits"
	"github.com/sirupsen/logrus"
)

// KeyWrapper is the part of keymanager.KeyManager the registry needs to
// wrap and unwrap group keys.
type KeyWrapper interface {
	Identity() interfaces.Identity
	AddBinding(proof keymanager.IdentityProof) error
	EncryptFor(msg []byte, identity interfaces.Identity) ([]byte, error)
	DecryptFrom(ciphertext []byte, identity interfaces.Identity) ([]byte, error)
}

// SerializedGroup is the raw export form of one registry entry.
type SerializedGroup struct {
	GroupID      string          `json:"group_id"`
	SymmetricKey crypto.HexBytes `json:"symmetric_key"`
}

// Manager is a registry of named groups for one identity. It is not safe
// for concurrent use.
type Manager struct {
	keys   KeyWrapper
	cipher interfaces.ISymmetricCipher
	log    logrus.FieldLogger
	groups map[string]*Group
}

// NewManager creates an empty registry. A nil cipher selects
// crypto.SecretBox; a nil logger the standard logrus logger.
func NewManager(keys KeyWrapper, cipher interfaces.ISymmetricCipher, logger logrus.FieldLogger) *Manager {
	if cipher == nil {
		cipher = crypto.NewSecretBox()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Manager{
		keys:   keys,
		cipher: cipher,
		log: logger.WithFields(logrus.Fields{
			"package":  "group",
			"identity": keys.Identity(),
		}),
		groups: make(map[string]*Group),
	}
}

func (m *Manager) checkFree(id string) error {
	if err := limits.ValidateGroupID(id); err != nil {
		return fmt.Errorf("%w: %w", errdefs.ErrMalformedInput, err)
	}
	if _, exists := m.groups[id]; exists {
		return fmt.Errorf("%w: group %q already exists", errdefs.ErrConflict, id)
	}
	return nil
}

// CreateGroup registers a new group with a fresh key.
func (m *Manager) CreateGroup(id string) (*Group, error) {
	if err := m.checkFree(id); err != nil {
		return nil, err
	}

	g, err := New(m.cipher)
	if err != nil {
		return nil, err
	}
	m.groups[id] = g

	m.log.WithFields(logrus.Fields{
		"function": "CreateGroup",
		"group_id": id,
	}).Info("Group created")
	return g, nil
}

// Group returns the group registered under id.
func (m *Manager) Group(id string) (*Group, bool) {
	g, ok := m.groups[id]
	return g, ok
}

// IDs returns the registered group ids in sorted order.
func (m *Manager) IDs() []string {
	ids := make([]string, 0, len(m.groups))
	for id := range m.groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered groups.
func (m *Manager) Len() int {
	return len(m.groups)
}

// CreateInvite wraps the key of group id for recipient. The recipient must
// already be bound; otherwise errdefs.ErrUnbound is returned.
func (m *Manager) CreateInvite(id string, recipient interfaces.Identity) (Invite, error) {
	g, ok := m.groups[id]
	if !ok {
		return Invite{}, fmt.Errorf("%w: group %q not found", errdefs.ErrMalformedInput, id)
	}

	key := g.Key()
	defer crypto.ZeroBytes(key)

	wrapped, err := m.keys.EncryptFor(key, recipient)
	if err != nil {
		return Invite{}, fmt.Errorf("failed to wrap key of group %q: %w", id, err)
	}

	m.log.WithFields(logrus.Fields{
		"function":  "CreateInvite",
		"group_id":  id,
		"recipient": recipient,
	}).Info("Invite created")

	return Invite{
		GroupID:       id,
		WrappedKey:    wrapped,
		OwnerIdentity: m.keys.Identity(),
	}, nil
}

// JoinGroup unwraps an invite and registers the group under its id.
//
// If proof is non-nil it must belong to the invite owner and is bound first,
// which allows joining on first contact. The id is checked for conflicts
// before any binding or unwrapping happens.
func (m *Manager) JoinGroup(invite Invite, proof *keymanager.IdentityProof) (*Group, error) {
	if err := invite.validate(); err != nil {
		return nil, err
	}
	if err := m.checkFree(invite.GroupID); err != nil {
		return nil, err
	}

	log := m.log.WithFields(logrus.Fields{
		"function": "JoinGroup",
		"group_id": invite.GroupID,
		"owner":    invite.OwnerIdentity,
	})

	if proof != nil {
		if !proof.Identity.Equal(invite.OwnerIdentity) {
			log.WithField("proof_identity", proof.Identity).Warn("Identity proof does not belong to invite owner")
			return nil, fmt.Errorf("%w: proof for %s does not match invite owner %s",
				errdefs.ErrUnauthenticated, proof.Identity, invite.OwnerIdentity)
		}
		if err := m.keys.AddBinding(*proof); err != nil {
			return nil, fmt.Errorf("failed to bind invite owner: %w", err)
		}
	}

	key, err := m.keys.DecryptFrom(invite.WrappedKey, invite.OwnerIdentity)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap key of group %q: %w", invite.GroupID, err)
	}
	defer crypto.ZeroBytes(key)

	g, err := FromKey(key, m.cipher)
	if err != nil {
		return nil, err
	}
	m.groups[invite.GroupID] = g

	log.Info("Group joined")
	return g, nil
}

// Serialize exports every group with its raw key, sorted by id. The output
// is secret and must be protected by the caller.
func (m *Manager) Serialize() []SerializedGroup {
	out := make([]SerializedGroup, 0, len(m.groups))
	for _, id := range m.IDs() {
		out = append(out, SerializedGroup{GroupID: id, SymmetricKey: m.groups[id].Key()})
	}
	return out
}

// Deserialize registers every entry. The batch is validated as a whole
// first; on any duplicate (within the batch or against the registry) it
// fails with errdefs.ErrConflict and registers nothing.
func (m *Manager) Deserialize(entries []SerializedGroup) error {
	staged := make(map[string]*Group, len(entries))
	for _, e := range entries {
		if err := m.checkFree(e.GroupID); err != nil {
			return err
		}
		if _, dup := staged[e.GroupID]; dup {
			return fmt.Errorf("%w: group %q appears twice", errdefs.ErrConflict, e.GroupID)
		}
		g, err := FromKey(e.SymmetricKey, m.cipher)
		if err != nil {
			return fmt.Errorf("group %q: %w", e.GroupID, err)
		}
		staged[e.GroupID] = g
	}

	for id, g := range staged {
		m.groups[id] = g
	}
	m.log.WithFields(logrus.Fields{
		"function": "Deserialize",
		"count":    len(staged),
	}).Info("Groups restored")
	return nil
}
