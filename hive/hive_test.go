package hive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromBytesHappyPath(t *testing.T) {
	fx := buildFixture(t)
	h, err := FromBytes(fx.data, OpenOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, h.BinCount())
	require.Equal(t, fx.rootOff, h.Header().RootCellOffset)
}

func TestFromBytesBadSignature(t *testing.T) {
	fx := buildFixture(t)
	fx.data[0] = 'x'
	_, err := FromBytes(fx.data, OpenOptions{})
	require.Error(t, err)
	var hErr *Error
	require.ErrorAs(t, err, &hErr)
	require.Equal(t, ErrKindSignature, hErr.Kind)
}

func TestFromBytesTruncated(t *testing.T) {
	_, err := FromBytes(make([]byte, 100), OpenOptions{})
	require.Error(t, err)
}

func TestVerifyDetectsMismatch(t *testing.T) {
	fx := buildFixture(t)
	h, err := FromBytes(fx.data, OpenOptions{})
	require.NoError(t, err)

	ok, want, got := h.Verify()
	require.True(t, ok)
	require.Equal(t, want, got)

	fx.data[4] ^= 0xFF // corrupt a checksum-covered byte without re-deriving the checksum
	h2, err := FromBytes(fx.data, OpenOptions{})
	require.NoError(t, err)
	ok, _, _ = h2.Verify()
	require.False(t, ok)
}

func TestRootResolves(t *testing.T) {
	fx := buildFixture(t)
	h, err := FromBytes(fx.data, OpenOptions{})
	require.NoError(t, err)

	root, err := h.Root()
	require.NoError(t, err)
	name, err := root.Name()
	require.NoError(t, err)
	require.Equal(t, "ROOT", name)
}
