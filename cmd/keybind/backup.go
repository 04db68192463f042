package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/opd-ai/keybind"
	"github.com/spf13/cobra"
)

func newBackupCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export the full state encrypted to the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return errFlagRequired("output")
			}
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			blob, err := a.user.EncryptSerialized(cmd.Context())
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, blob, 0o600); err != nil {
				return err
			}
			success(cmd, "Backup written to %s", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "backup file")
	return cmd
}

func newRestoreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <backup-file>",
		Short: "Replace the current state with a backup made by the same account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := a.openStore(); err != nil {
				return err
			}
			acct, err := a.store.LoadAccount()
			if err != nil {
				return err
			}

			u, err := keybind.RestoreFromAccount(cmd.Context(), acct, blob, a.options())
			if err != nil {
				return err
			}
			a.acct, a.user = acct, u
			if err := a.save(cmd.Context()); err != nil {
				return err
			}
			success(cmd, "Restored %d bindings and %d groups for %s",
				len(u.KeyManager().BoundIdentities()), u.Groups().Len(), color.CyanString(string(u.Identity())))
			return nil
		},
	}
}
