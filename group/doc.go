// Package group implements shared-key group messaging on top of pairwise
// bindings.
//
// # Overview
//
// A [Group] is one random symmetric key plus authenticated encryption of
// arbitrary payloads under it. A [Manager] is a registry of named groups for
// one identity and implements the invite protocol:
//
//   - The owner creates a group and wraps its key for a bound recipient
//     using the pairwise secret from the key manager.
//   - The recipient unwraps the key with the same pairwise secret and
//     registers an identical group under the same id.
//
// Joined and created groups behave identically once constructed.
//
// # Creating and Inviting
//
//	g, err := alice.CreateGroup("design-review")
//	if err != nil {
//	    return err
//	}
//	invite, err := alice.CreateInvite("design-review", bob.Identity())
//	// ... transport invite to bob ...
//	joined, err := bobGroups.JoinGroup(invite, nil)
//
// If the recipient has not yet bound the owner, the owner's identity proof
// can travel with the invite and is bound before unwrapping:
//
//	joined, err := bobGroups.JoinGroup(invite, &ownerProof)
//
// # Payload Envelope
//
// Every plaintext starts with a one-byte [PayloadKind] tag so the original
// shape survives the round trip:
//
//	0x01 text    string
//	0x02 json    any other value, encoded with encoding/json
//	0x03 binary  []byte
//
// Decrypt returns a string for text and []byte for binary. Structured
// payloads decode into generic JSON values; DecryptInto decodes into a
// caller-supplied type instead.
//
// # Persistence
//
// Serialize exports raw keys and Deserialize restores them atomically. The
// export is secret material; the keybind User encrypts it to the owning
// account before it leaves memory.
package group
