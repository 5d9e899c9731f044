package hive

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NikKazakov/Windows-10-Registry-Parser/internal/format"
)

func TestValueText(t *testing.T) {
	h := openFixture(t)
	root, err := h.Root()
	require.NoError(t, err)
	ver, err := root.Value("Ver")
	require.NoError(t, err)

	require.Equal(t, uint32(format.RegSZ), ver.Type())
	text, err := ver.Text()
	require.NoError(t, err)
	require.Equal(t, "1.0", text)

	_, err = ver.DWORD()
	require.Error(t, err)
	var hErr *Error
	require.ErrorAs(t, err, &hErr)
	require.Equal(t, ErrKindType, hErr.Kind)
}

func TestValueDWORDInline(t *testing.T) {
	h := openFixture(t)
	root, err := h.Root()
	require.NoError(t, err)
	count, err := root.Value("Count")
	require.NoError(t, err)

	v, err := count.DWORD()
	require.NoError(t, err)
	require.Equal(t, uint32(42), v)
}

func TestValueMultiString(t *testing.T) {
	h := openFixture(t)
	root, err := h.Root()
	require.NoError(t, err)
	tags, err := root.Value("Tags")
	require.NoError(t, err)

	ss, err := tags.Strings()
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, ss)
}

func TestValueDecodedDispatch(t *testing.T) {
	h := openFixture(t)
	root, err := h.Root()
	require.NoError(t, err)

	ver, err := root.Value("Ver")
	require.NoError(t, err)
	decoded, err := ver.Decoded()
	require.NoError(t, err)
	require.Equal(t, "1.0", decoded)

	count, err := root.Value("Count")
	require.NoError(t, err)
	decoded, err = count.Decoded()
	require.NoError(t, err)
	require.Equal(t, uint32(42), decoded)
}

func TestValueNameOfUnnamedValue(t *testing.T) {
	vk := format.VKRecord{Type: format.RegSZ}
	name, err := decodeValueName(vk)
	require.NoError(t, err)
	require.Equal(t, "", name)
}
