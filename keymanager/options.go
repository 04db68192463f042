package keymanager

import (
	"github.com/opd-ai/keybind/crypto"
	"github.com/opd-ai/keybind/interfaces"
	"github.com/sirupsen/logrus"
)

// Options holds the replaceable primitives of a KeyManager.
type Options struct {
	Exchange interfaces.IKeyExchange
	Cipher   interfaces.ISymmetricCipher
	Logger   logrus.FieldLogger
}

// NewOptions returns secp256k1 key exchange, a secretbox cipher and the
// standard logrus logger.
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
