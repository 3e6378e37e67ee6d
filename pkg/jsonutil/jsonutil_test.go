package jsonutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalIndentHonorsPrefixAndIndent(t *testing.T) {
	data, err := MarshalIndent(map[string]int{"a": 1}, "> ", "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n>   \"a\": 1\n> }", string(data))

	data, err = MarshalIndent([]int{1, 2}, "", "\t")
	require.NoError(t, err)
	assert.Equal(t, "[\n\t1,\n\t2\n]", string(data))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid([]byte(`{"a":1}`)))
	assert.True(t, Valid([]byte(`42`)))
	assert.True(t, Valid([]byte(`"x"`)))
	assert.False(t, Valid([]byte(`{broken`)))
	assert.False(t, Valid([]byte(``)))
}
