package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/opd-ai/keybind/group"
	"github.com/opd-ai/keybind/interfaces"
	"github.com/opd-ai/keybind/keymanager"
	"github.com/spf13/cobra"
)

func newGroupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Create, share and use group keys",
	}
	cmd.AddCommand(
		newGroupCreateCmd(a),
		newGroupListCmd(a),
		newGroupInviteCmd(a),
		newGroupJoinCmd(a),
		newGroupEncryptCmd(a),
		newGroupDecryptCmd(a),
	)
	return cmd
}

func newGroupCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create [group-id]",
		Short: "Create a group with a fresh key; the id defaults to a random UUID",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := uuid.NewString()
			if len(args) == 1 {
				id = args[0]
			}
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			if _, err := a.user.Groups().CreateGroup(id); err != nil {
				return err
			}
			if err := a.save(cmd.Context()); err != nil {
				return err
			}
			success(cmd, "Created group %s", color.CyanString(id))
			return nil
		},
	}
}

func newGroupListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List known groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			for _, id := range a.user.Groups().IDs() {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func newGroupInviteCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "invite <group-id> <identity>",
		Short: "Wrap a group key for a bound peer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			invite, err := a.user.Groups().CreateInvite(args[0], interfaces.Identity(args[1]))
			if err != nil {
				return err
			}
			data, err := invite.Marshal()
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, data)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the invite to a file instead of stdout")
	return cmd
}

func newGroupJoinCmd(a *app) *cobra.Command {
	var proofFile string

	cmd := &cobra.Command{
		Use:   "join <invite-file>",
		Short: "Join a group from an invite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			invite, err := group.UnmarshalInvite(data)
			if err != nil {
				return err
			}

			var proof *keymanager.IdentityProof
			if proofFile != "" {
				raw, err := os.ReadFile(proofFile)
				if err != nil {
					return err
				}
				p, err := keymanager.UnmarshalIdentityProof(raw)
				if err != nil {
					return err
				}
				proof = &p
			}

			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			if _, err := a.user.Groups().JoinGroup(invite, proof); err != nil {
				return err
			}
			if err := a.save(cmd.Context()); err != nil {
				return err
			}
			success(cmd, "Joined group %s from %s", color.CyanString(invite.GroupID), invite.OwnerIdentity)
			return nil
		},
	}
	cmd.Flags().StringVar(&proofFile, "proof", "", "owner identity proof, if the owner is not yet bound")
	return cmd
}

func newGroupEncryptCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt <group-id> <message>",
		Short: "Encrypt a text message for a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.group(cmd, args[0])
			if err != nil {
				return err
			}
			ct, err := g.Encrypt(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(ct))
			return nil
		},
	}
}

func newGroupDecryptCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt <group-id> <hex-ciphertext>",
		Short: "Decrypt a group message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := decodeHex(args[1])
			if err != nil {
				return err
			}
			g, err := a.group(cmd, args[0])
			if err != nil {
				return err
			}
			env, err := g.Open(ct)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch env.Kind {
			case group.PayloadBinary:
				fmt.Fprintln(out, hex.EncodeToString(env.Body))
			default:
				fmt.Fprintln(out, string(env.Body))
			}
			return nil
		},
	}
}

func (a *app) group(cmd *cobra.Command, id string) (*group.Group, error) {
	if err := a.load(cmd.Context()); err != nil {
		return nil, err
	}
	g, ok := a.user.Groups().Group(id)
	if !ok {
		return nil, fmt.Errorf("unknown group %q", id)
	}
	return g, nil
}
