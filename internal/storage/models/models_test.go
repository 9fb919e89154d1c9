package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSliceJSONRoundTrip(t *testing.T) {
	data, err := StringSliceToJSON([]string{"Python", "SQL"})
	require.NoError(t, err)

	values, err := JSONToStringSlice(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"Python", "SQL"}, values)
}

// TestStringSliceJSONNil nil切片落库为空数组而不是null
func TestStringSliceJSONNil(t *testing.T) {
	data, err := StringSliceToJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	values, err := JSONToStringSlice(nil)
	require.NoError(t, err)
	assert.NotNil(t, values)
	assert.Empty(t, values)
}
