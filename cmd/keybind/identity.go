package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/opd-ai/keybind/account"
	"github.com/opd-ai/keybind/crypto"
	"github.com/opd-ai/keybind/keymanager"
	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	var keyHex string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new account and exchange key pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.openStore(); err != nil {
				return err
			}

			ctx := cmd.Context()
			if keyHex == "" {
				acct, _, err := a.store.Init(ctx, a.options())
				if err != nil {
					return err
				}
				success(cmd, "Initialized %s for %s", a.home, color.CyanString(string(acct.Identity())))
				return nil
			}

			acct, err := account.FromHex(keyHex)
			if err != nil {
				return err
			}
			if _, err := a.store.Import(ctx, acct, a.options()); err != nil {
				return err
			}
			success(cmd, "Imported %s into %s", color.CyanString(string(acct.Identity())), a.home)
			return nil
		},
	}
	cmd.Flags().StringVar(&keyHex, "key", "", "import an existing account private key (hex)")
	return cmd
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the account identity and exchange public key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "identity:     %s\n", a.user.Identity())
			fmt.Fprintf(out, "exchange key: %s\n", crypto.HexBytes(a.user.PublicKey()))
			fmt.Fprintf(out, "bindings:     %d\n", len(a.user.KeyManager().BoundIdentities()))
			fmt.Fprintf(out, "groups:       %d\n", a.user.Groups().Len())
			return nil
		},
	}
}

func newProofCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "proof",
		Short: "Export a signed identity proof for the exchange key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			proof, err := a.user.KeyManager().ProduceIdentityProof(cmd.Context())
			if err != nil {
				return err
			}
			data, err := proof.Marshal()
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, data)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the proof to a file instead of stdout")
	return cmd
}

func newBindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bind <proof-file>",
		Short: "Verify a peer's identity proof and record the binding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			proof, err := keymanager.UnmarshalIdentityProof(data)
			if err != nil {
				return err
			}

			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			if err := a.user.KeyManager().AddBinding(proof); err != nil {
				return err
			}
			if err := a.save(cmd.Context()); err != nil {
				return err
			}
			success(cmd, "Bound %s", color.CyanString(string(proof.Identity)))
			return nil
		},
	}
}

func newPeersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "peers",
		Short: "List bound identities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			bindings := a.user.KeyManager().Bindings()
			for _, id := range a.user.KeyManager().BoundIdentities() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", id, crypto.HexBytes(bindings[id]))
			}
			return nil
		},
	}
}

func newExportKeyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export-key",
		Short: "Print the account private key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.openStore(); err != nil {
				return err
			}
			acct, err := a.store.LoadAccount()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("!")+" Anyone holding this key controls your identity")
			fmt.Fprintln(cmd.OutOrStdout(), acct.PrivateKeyHex())
			return nil
		},
	}
}

func newPasswdCmd(a *app) *cobra.Command {
	var newPassphrase string

	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the store passphrase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.openStore(); err != nil {
				return err
			}
			// Fail early on a wrong current passphrase.
			if _, err := a.store.LoadAccount(); err != nil {
				return err
			}

			next := []byte(newPassphrase)
			if len(next) == 0 {
				var err error
				if next, err = promptPassphrase("New passphrase: "); err != nil {
					return err
				}
				confirm, err := promptPassphrase("Repeat passphrase: ")
				if err != nil {
					return err
				}
				if string(confirm) != string(next) {
					return fmt.Errorf("passphrases do not match")
				}
			}
			if err := a.store.ChangePassphrase(next); err != nil {
				return err
			}
			success(cmd, "Passphrase changed")
			return nil
		},
	}
	cmd.Flags().StringVar(&newPassphrase, "new-passphrase", "", "new passphrase (prompted if unset)")
	return cmd
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	success(cmd, "Wrote %s", path)
	return nil
}
