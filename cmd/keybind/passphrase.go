package main

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

// readPassphrase returns the --passphrase flag, then the environment, then
// prompts on the terminal.
func (a *app) readPassphrase(prompt string) ([]byte, error) {
	if a.passphrase != "" {
		return []byte(a.passphrase), nil
	}
	if env := os.Getenv(envPassphrase); env != "" {
		return []byte(env), nil
	}
	return promptPassphrase(prompt)
}

func promptPassphrase(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("cannot read passphrase: stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, prompt)
	pass, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}
	if len(pass) == 0 {
		return nil, errors.New("passphrase cannot be empty")
	}
	return pass, nil
}
