package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/opd-ai/keybind"
	"github.com/opd-ai/keybind/account"
	"github.com/opd-ai/keybind/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	envHome       = "KEYBIND_HOME"
	envPassphrase = "KEYBIND_PASSPHRASE"
)

// app carries the global flags and the opened store for one invocation.
type app struct {
	home       string
	passphrase string
	logLevel   string

	store *store.Store
	acct  *account.Account
	user  *keybind.User
}

func defaultHome() string {
	if home := os.Getenv(envHome); home != "" {
		return home
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return ".keybind"
	}
	return filepath.Join(dir, ".keybind")
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "keybind",
		Short:         "Bind exchange keys to account identities and share group keys",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(a.logLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(level)
			logrus.SetOutput(cmd.ErrOrStderr())
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.home, "home", defaultHome(), "keybind home directory (env "+envHome+")")
	flags.StringVar(&a.passphrase, "passphrase", "", "store passphrase (env "+envPassphrase+", prompted if unset)")
	flags.StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newInitCmd(a),
		newWhoamiCmd(a),
		newProofCmd(a),
		newBindCmd(a),
		newPeersCmd(a),
		newEncryptCmd(a),
		newDecryptCmd(a),
		newGroupCmd(a),
		newBackupCmd(a),
		newRestoreCmd(a),
		newExportKeyCmd(a),
		newPasswdCmd(a),
	)
	return root
}

func (a *app) options() *keybind.Options {
	opts := keybind.NewOptions()
	opts.Logger = logrus.StandardLogger()
	return opts
}

// openStore opens the home directory without loading anything.
func (a *app) openStore() error {
	if a.store != nil {
		return nil
	}
	pass, err := a.readPassphrase("Passphrase: ")
	if err != nil {
		return err
	}
	s, err := store.Open(a.home, pass)
	if err != nil {
		return err
	}
	a.store = s
	return nil
}

// load opens the store and restores the account and User.
func (a *app) load(ctx context.Context) error {
	if err := a.openStore(); err != nil {
		return err
	}
	acct, u, err := a.store.Load(ctx, a.options())
	if err != nil {
		if errors.Is(err, store.ErrNotInitialized) {
			return fmt.Errorf("%w: run %s first", err, color.YellowString("keybind init"))
		}
		return err
	}
	a.acct, a.user = acct, u
	return nil
}

func (a *app) save(ctx context.Context) error {
	return a.store.SaveUser(ctx, a.user)
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

func success(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓")+" "+fmt.Sprintf(format, args...))
}
