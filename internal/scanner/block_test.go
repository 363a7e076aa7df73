package scanner

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBlockRef(t *testing.T) {
	ref, err := ParseBlockRef("latest")
	require.NoError(t, err)
	require.Equal(t, Latest(), ref)

	ref, err = ParseBlockRef(" 12345 ")
	require.NoError(t, err)
	require.Equal(t, Block(12345), ref)
	require.Equal(t, "12345", ref.String())

	ref, err = ParseBlockRef("0")
	require.NoError(t, err)
	require.Equal(t, Block(0), ref)
	require.False(t, ref.Latest)
}

func TestParseBlockRefInvalid(t *testing.T) {
	for _, input := range []string{"", "-1", "0x10", "pending", "1.5"} {
		_, err := ParseBlockRef(input)
		require.Error(t, err, input)
	}
}

func TestParseAddresses(t *testing.T) {
	addrs, err := ParseAddresses([]string{"0xcccccccccccccccccccccccccccccccccccccccc", " ", ""})
	require.NoError(t, err)
	require.Len(t, addrs, 1)

	_, err = ParseAddresses([]string{"0xnothex"})
	require.Error(t, err)

	_, err = ParseAddress("")
	require.Error(t, err)
}
