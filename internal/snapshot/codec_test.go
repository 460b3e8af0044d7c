package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/gridsnapgo/internal/grid"
)

func TestCodecRoundTrip(t *testing.T) {
	t.Parallel()

	in := []grid.Entry{
		{Key: "alice", Value: "admin"},
		{Key: "bob", Value: float64(42)},
		{Key: "carol", Value: map[string]any{"active": true}},
	}

	data, err := Encode(in)
	require.NoError(t, err)

	out, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestEncodeEmptyRegionIsAnArray(t *testing.T) {
	t.Parallel()

	data, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	out, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDecodeRejectsMalformedPayloads(t *testing.T) {
	t.Parallel()

	for _, payload := range []string{"", "{", `{"key":"not-an-array"}`, "null extra"} {
		_, err := Decode([]byte(payload))
		require.Error(t, err, "payload %q should not decode", payload)
		assert.Contains(t, err.Error(), "failed to decode region entries")
	}
}
