package keybind

import (
	"github.com/opd-ai/keybind/crypto"
	"github.com/opd-ai/keybind/interfaces"
	"github.com/opd-ai/keybind/keymanager"
	"github.com/sirupsen/logrus"
)

// Options contains configuration for creating a User.
type Options struct {
	// Exchange creates exchange key pairs. Defaults to secp256k1.
	Exchange interfaces.IKeyExchange
	// Cipher is used for pairwise and group encryption. Defaults to secretbox.
	Cipher interfaces.ISymmetricCipher
	// Logger receives structured logs from every component.
	Logger logrus.FieldLogger
}

// NewOptions creates a new default Options.
func NewOptions() *Options {
	return &Options{
		Exchange: crypto.NewKeyExchange(),
		Cipher:   crypto.NewSecretBox(),
		Logger:   logrus.StandardLogger(),
	}
}

func (o *Options) withDefaults() *Options {
	defaults := NewOptions()
	if o == nil {
		return defaults
	}
	out := *o
	if out.Exchange == nil {
		out.Exchange = defaults.Exchange
	}
	if out.Cipher == nil {
		out.Cipher = defaults.Cipher
	}
	if out.Logger == nil {
		out.Logger = defaults.Logger
	}
	return &out
}

func (o *Options) keyManagerOptions() *keymanager.Options {
	return &keymanager.Options{
		Exchange: o.Exchange,
		Cipher:   o.Cipher,
		Logger:   o.Logger,
	}
}
