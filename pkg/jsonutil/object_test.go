package jsonutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObjectPreservesKeyOrder(t *testing.T) {
	obj, err := ParseObject([]byte(`{"zeta":1,"alpha":"x","mid":{"nested":true}}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, obj.Keys())
}

func TestObjectMarshalRoundTrip(t *testing.T) {
	in := `{"email":"a@b.com","tags":["x","y"],"nested":{"k":1},"n":3.5}`
	obj, err := ParseObject([]byte(in))
	require.NoError(t, err)

	out, err := obj.Marshal()
	require.NoError(t, err)
	assert.Equal(t, in, string(out))
}

func TestObjectSetReplacesOnlyExistingKeys(t *testing.T) {
	obj, err := ParseObject([]byte(`{"a":1,"b":2}`))
	require.NoError(t, err)

	obj.Set("a", "replaced")
	obj.Set("invented", "nope")

	assert.Equal(t, "replaced", obj.Get("a"))
	assert.False(t, obj.Has("invented"))
	assert.Equal(t, []string{"a", "b"}, obj.Keys())

	out, err := obj.Marshal()
	require.NoError(t, err)
	assert.Equal(t, `{"a":"replaced","b":2}`, string(out))
}

func TestObjectDelete(t *testing.T) {
	obj, err := ParseObject([]byte(`{"a":1,"b":2,"c":3}`))
	require.NoError(t, err)

	obj.Delete("b")

	assert.Equal(t, []string{"a", "c"}, obj.Keys())
	assert.False(t, obj.Has("b"))

	out, err := obj.Marshal()
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"c":3}`, string(out))
}

func TestParseObjectRejectsNonObjects(t *testing.T) {
	for _, in := range []string{`[1,2]`, `"str"`, `42`, `null`} {
		_, err := ParseObject([]byte(in))
		assert.ErrorIs(t, err, ErrNotObject, "input %s", in)
	}

	_, err := ParseObject([]byte(`{broken`))
	assert.Error(t, err)
}
