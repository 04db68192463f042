package group

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/opd-ai/keybind/errdefs"
	"github.com/opd-ai/keybind/limits"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
	Pin   bool     `json:"pin"`
}

func TestNewGroupHasRandomKey(t *testing.T) {
	a, err := New(nil)
	require.NoError(t, err)
	b, err := New(nil)
	require.NoError(t, err)

	assert.Len(t, a.Key(), limits.SymmetricKeySize)
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestFromKey(t *testing.T) {
	key := make([]byte, limits.SymmetricKeySize)
	key[0] = 7

	g, err := FromKey(key, nil)
	require.NoError(t, err)
	key[0] = 9
	assert.Equal(t, byte(7), g.Key()[0], "key is copied")

	_, err = FromKey(make([]byte, 16), nil)
	assert.ErrorIs(t, err, errdefs.ErrMalformedInput)
}

func TestTextRoundTrip(t *testing.T) {
	g, err := New(nil)
	require.NoError(t, err)

	for _, text := range []string{"", "hello group", "þâßÛ{\"looks\":\"structured\"}"} {
		ct, err := g.Encrypt(text)
		require.NoError(t, err)

		out, err := g.Decrypt(ct)
		require.NoError(t, err)
		assert.IsType(t, "", out)
		assert.Equal(t, text, out)
	}
}

func TestTextResemblingJSONStaysText(t *testing.T) {
	g, err := New(nil)
	require.NoError(t, err)

	ct, err := g.Encrypt(`{"a":1}`)
	require.NoError(t, err)
	out, err := g.Decrypt(ct)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, out)
}

func TestStructuredRoundTrip(t *testing.T) {
	g, err := New(nil)
	require.NoError(t, err)

	value := map[string]any{
		"n":      json.Number("3"),
		"nested": map[string]any{"ok": true},
		"list":   []any{"a", json.Number("1.5"), nil},
	}

	ct, err := g.Encrypt(value)
	require.NoError(t, err)
	out, err := g.Decrypt(ct)
	require.NoError(t, err)
	assert.Equal(t, value, out)
}

func TestLargeIntegersSurviveRoundTrip(t *testing.T) {
	g, err := New(nil)
	require.NoError(t, err)

	const id int64 = 1<<53 + 1
	ct, err := g.Encrypt(map[string]any{"id": id, "neg": int64(-1 << 62)})
	require.NoError(t, err)

	out, err := g.Decrypt(ct)
	require.NoError(t, err)
	m, ok := out.(map[string]any)
	require.True(t, ok)

	n, ok := m["id"].(json.Number)
	require.True(t, ok, "numbers decode as json.Number, got %T", m["id"])
	got, err := n.Int64()
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Equal(t, json.Number("-4611686018427387904"), m["neg"])
}

func TestDecryptInto(t *testing.T) {
	g, err := New(nil)
	require.NoError(t, err)

	in := note{Title: "agenda", Tags: []string{"q3", "planning"}, Pin: true}
	ct, err := g.Encrypt(in)
	require.NoError(t, err)

	var out note
	require.NoError(t, g.DecryptInto(ct, &out))
	assert.Equal(t, in, out)

	textCT, err := g.Encrypt("plain")
	require.NoError(t, err)
	assert.ErrorIs(t, g.DecryptInto(textCT, &out), errdefs.ErrMalformedInput)
}

func TestBinaryRoundTrip(t *testing.T) {
	g, err := New(nil)
	require.NoError(t, err)

	ct, err := g.Encrypt([]byte{0x00, 0xff, 0x10})
	require.NoError(t, err)
	out, err := g.Decrypt(ct)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xff, 0x10}, out)
}

func TestEnvelopeTagging(t *testing.T) {
	g, err := FromKey(make([]byte, limits.SymmetricKeySize), plainCipher{})
	require.NoError(t, err)

	tests := []struct {
		payload any
		kind    PayloadKind
	}{
		{"text", PayloadText},
		{[]byte("raw"), PayloadBinary},
		{map[string]int{"a": 1}, PayloadJSON},
		{42, PayloadJSON},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			ct, err := g.Encrypt(tt.payload)
			require.NoError(t, err)
			assert.Equal(t, byte(tt.kind), ct[0])

			env, err := g.Open(ct)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, env.Kind)
		})
	}
}

func TestOpenRejectsBadEnvelopes(t *testing.T) {
	g, err := FromKey(make([]byte, limits.SymmetricKeySize), plainCipher{})
	require.NoError(t, err)

	_, err = g.Decrypt([]byte{})
	assert.ErrorIs(t, err, errdefs.ErrMalformedInput)

	_, err = g.Decrypt([]byte{0x7f, 'x'})
	assert.ErrorIs(t, err, errdefs.ErrMalformedInput)

	_, err = g.Decrypt([]byte{byte(PayloadJSON), '{'})
	assert.ErrorIs(t, err, errdefs.ErrMalformedInput)
}

func TestEncryptRejectsUnencodable(t *testing.T) {
	g, err := New(nil)
	require.NoError(t, err)

	_, err = g.Encrypt(make(chan int))
	assert.ErrorIs(t, err, errdefs.ErrMalformedInput)
}

func TestWrongKeyFailsAuthentication(t *testing.T) {
	a, err := New(nil)
	require.NoError(t, err)
	b, err := New(nil)
	require.NoError(t, err)

	ct, err := a.Encrypt("secret")
	require.NoError(t, err)
	_, err = b.Decrypt(ct)
	assert.ErrorIs(t, err, errdefs.ErrCipherFailure)
}

func TestCipherErrorsPropagate(t *testing.T) {
	boom := errors.New("cipher offline")
	g, err := FromKey(make([]byte, limits.SymmetricKeySize), failingCipher{err: boom})
	require.NoError(t, err)

	_, err = g.Encrypt("x")
	assert.ErrorIs(t, err, boom)
	_, err = g.Decrypt([]byte("x"))
	assert.ErrorIs(t, err, boom)
}
