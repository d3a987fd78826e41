package testserdes

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// MarshalUnmarshalJSON checks if expected stays the same after
// marshal/unmarshal via JSON.
func MarshalUnmarshalJSON(t *testing.T, expected, actual any) {
	data, err := json.Marshal(expected)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, actual))
	require.Equal(t, expected, actual)
}

// UnmarshalMarshalJSON decodes the given JSON fixture into first, encodes it
// back and decodes the result into second. Both decoded values must be equal,
// so that no information is lost by a decode/encode cycle. The fixture is
// compacted first, so that undecoded raw parts compare equal.
func UnmarshalMarshalJSON(t *testing.T, fixture string, first, second any) {
	buf := new(bytes.Buffer)
	require.NoError(t, json.Compact(buf, []byte(fixture)))
	require.NoError(t, json.Unmarshal(buf.Bytes(), first))
	data, err := json.Marshal(first)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, second))
	require.Equal(t, first, second)
}
