package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/opd-ai/keybind/interfaces"
	"github.com/spf13/cobra"
)

func newEncryptCmd(a *app) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "encrypt <message>",
		Short: "Encrypt a message for a bound peer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if to == "" {
				return errFlagRequired("to")
			}
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			ct, err := a.user.KeyManager().EncryptFor([]byte(args[0]), interfaces.Identity(to))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(ct))
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "recipient identity")
	return cmd
}

func newDecryptCmd(a *app) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "decrypt <hex-ciphertext>",
		Short: "Decrypt a message from a bound peer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" {
				return errFlagRequired("from")
			}
			ct, err := decodeHex(args[0])
			if err != nil {
				return err
			}
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			pt, err := a.user.KeyManager().DecryptFrom(ct, interfaces.Identity(from))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(pt))
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "sender identity")
	return cmd
}

func errFlagRequired(name string) error {
	return fmt.Errorf("--%s is required", name)
}

func decodeHex(s string) ([]byte, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid hex ciphertext: %w", err)
	}
	return raw, nil
}
