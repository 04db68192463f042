package crypto

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerHelperFields(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	NewLoggerWith(logger, "Encrypt").
		WithField("size", 12).
		WithError(errors.New("boom"), "seal").
		Warn("seal failed")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "Encrypt", entry.Data["function"])
	assert.Equal(t, "crypto", entry.Data["package"])
	assert.Equal(t, 12, entry.Data["size"])
	assert.Equal(t, "boom", entry.Data["error"])
	assert.Equal(t, "seal", entry.Data["operation"])
}

func TestLoggerHelperEntry(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	NewLoggerWith(logger, "Decrypt").Entry("Decrypt")
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "Function entry: Decrypt", hook.LastEntry().Message)
}

func TestSecureFieldHash(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		preview string
	}{
		{"nil", nil, "nil"},
		{"short", []byte{0xab, 0xcd}, "abcd"},
		{"long", []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, "0102030405060708..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := SecureFieldHash(tt.data, "key")
			assert.Equal(t, tt.preview, fields["key_preview"])
			assert.Equal(t, len(tt.data), fields["key_size"])
		})
	}
}

func TestOperationFields(t *testing.T) {
	fields := OperationFields("wrap", "ok", logrus.Fields{"group": "g1"})
	assert.Equal(t, logrus.Fields{"operation": "wrap", "status": "ok", "group": "g1"}, fields)
}
