package crypto

import (
	"encoding/json"
	"testing"

	"github.com/opd-ai/keybind/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexBytesJSON(t *testing.T) {
	type wrapper struct {
		Key HexBytes `json:"key"`
	}

	data, err := json.Marshal(wrapper{Key: []byte{0xde, 0xad, 0xbe, 0xef}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"deadbeef"}`, string(data))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"key":"0xCAFE"}`), &w))
	assert.Equal(t, HexBytes{0xca, 0xfe}, w.Key)

	err = json.Unmarshal([]byte(`{"key":"xyz"}`), &w)
	assert.ErrorIs(t, err, errdefs.ErrMalformedInput)
}
