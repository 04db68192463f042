// Package keybind binds stable external identities to key-exchange keys and
// distributes shared group keys over the resulting pairwise secrets.
//
// # Overview
//
// Each participant is a [User] built around an external account (an
// Ethereum-style address that can sign and decrypt). The User owns:
//
//   - a keymanager.KeyManager with a secp256k1 exchange key pair and a trust
//     store of verified bindings from peer identities to their exchange keys
//   - a group.Manager holding named symmetric group keys
//
// # Establishing Trust
//
//	alice, _ := keybind.NewFromAccount(aliceAccount, nil)
//	bob, _ := keybind.NewFromAccount(bobAccount, nil)
//
//	proof, _ := bob.KeyManager().ProduceIdentityProof(ctx)
//	if err := alice.KeyManager().AddBinding(proof); err != nil {
//	    // errdefs.ErrUnauthenticated or errdefs.ErrConflict
//	}
//
// # Group Keys
//
//	alice.Groups().CreateGroup("ops")
//	invite, _ := alice.Groups().CreateInvite("ops", bob.Identity())
//	g, _ := bob.Groups().JoinGroup(invite, &aliceProof)
//
// # Backup and Restore
//
// The whole state (bindings, group keys and the exchange scalar) is exported
// encrypted to the owning account and can only be restored by it:
//
//	blob, err := alice.EncryptSerialized(ctx)
//	restored, err := keybind.RestoreFromAccount(ctx, aliceAccount, blob, nil)
//
// # Concurrency
//
// A User is not safe for concurrent use. Callers that share one across
// goroutines must serialise access. Only signing and personal encryption may
// block; both take the caller's context.
package keybind
