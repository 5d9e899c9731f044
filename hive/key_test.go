package hive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func openFixture(t *testing.T) *Hive {
	t.Helper()
	fx := buildFixture(t)
	h, err := FromBytes(fx.data, OpenOptions{})
	require.NoError(t, err)
	return h
}

func TestKeySubkeysOrderedAndKeyed(t *testing.T) {
	h := openFixture(t)
	root, err := h.Root()
	require.NoError(t, err)

	subkeys, err := root.Subkeys()
	require.NoError(t, err)
	require.Equal(t, 1, subkeys.Len())

	byIndex, err := subkeys.At(0)
	require.NoError(t, err)
	name, err := byIndex.Name()
	require.NoError(t, err)
	require.Equal(t, "Sub", name)

	byName, err := subkeys.Get("Sub")
	require.NoError(t, err)
	require.Same(t, byIndex, byName)

	_, err = subkeys.Get("sub") // case-sensitive: lowercase must not match
	require.Error(t, err)

	_, err = subkeys.At(1)
	require.Error(t, err)
	var hErr *Error
	require.ErrorAs(t, err, &hErr)
	require.Equal(t, ErrKindRange, hErr.Kind)
}

func TestKeyParentRoundTrips(t *testing.T) {
	h := openFixture(t)
	root, err := h.Root()
	require.NoError(t, err)
	child, err := root.Subkey("Sub")
	require.NoError(t, err)

	parent, err := child.Parent()
	require.NoError(t, err)
	parentName, err := parent.Name()
	require.NoError(t, err)
	require.Equal(t, "ROOT", parentName)
}

func TestKeyValuesOrderedAndKeyed(t *testing.T) {
	h := openFixture(t)
	root, err := h.Root()
	require.NoError(t, err)

	values, err := root.Values()
	require.NoError(t, err)
	require.Equal(t, 3, values.Len())

	ver, err := values.Get("Ver")
	require.NoError(t, err)
	text, err := ver.Text()
	require.NoError(t, err)
	require.Equal(t, "1.0", text)

	_, err = values.Get("Nonexistent")
	require.Error(t, err)
}

func TestKeySecurityDescriptorAbsentIsNotFound(t *testing.T) {
	h := openFixture(t)
	root, err := h.Root()
	require.NoError(t, err)

	// The fixture's root has SecurityOffset == InvalidOffset.
	_, err = root.SecurityDescriptor()
	require.Error(t, err)
	var hErr *Error
	require.ErrorAs(t, err, &hErr)
	require.Equal(t, ErrKindNotFound, hErr.Kind)
}

func TestKeyClassNameEmptyByDefault(t *testing.T) {
	h := openFixture(t)
	root, err := h.Root()
	require.NoError(t, err)
	class, err := root.ClassName()
	require.NoError(t, err)
	require.Equal(t, "", class)
}
