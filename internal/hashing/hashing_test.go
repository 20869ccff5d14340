package hashing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnownDigests(t *testing.T) {
	tests := []struct {
		algorithm string
		input     string
		expected  string
	}{
		{MD5, "password", "5f4dcc3b5aa765d61d8327deb882cf99"},
		{SHA1, "password", "5baa61e4c9b93f3f0682250b6cf8331b7ee68fd8"},
		{SHA256, "password", "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8"},
		{NTLM, "password", "8846f7eaee8fb117ad06bdd830b7586c"},
		{SHA3_256, "", "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"},
	}

	for _, test := range tests {
		t.Run(test.algorithm, func(t *testing.T) {
			got, err := Hash(test.input, test.algorithm)
			require.NoError(t, err)
			assert.Equal(t, test.expected, got)
		})
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		length   int
		expected string
	}{
		{32, MD5},
		{40, SHA1},
		{64, SHA256},
		{128, SHA512},
		{31, Unknown},
		{0, Unknown},
		{56, Unknown},
	}
	for _, test := range tests {
		digest := make([]byte, test.length)
		for i := range digest {
			digest[i] = 'a'
		}
		assert.Equal(t, test.expected, Detect(string(digest)), "length %d", test.length)
	}
}

func TestResolve(t *testing.T) {
	name, _, err := Resolve("", "5baa61e4c9b93f3f0682250b6cf8331b7ee68fd8")
	require.NoError(t, err)
	assert.Equal(t, SHA1, name)

	name, _, err = Resolve("", "abc")
	require.NoError(t, err)
	assert.Equal(t, MD5, name)

	name, _, err = Resolve("SHA256", "abc")
	require.NoError(t, err)
	assert.Equal(t, SHA256, name)

	_, _, err = Resolve("crc32", "abc")
	require.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}

func TestNTLMRejectsInvalidUTF8(t *testing.T) {
	_, err := Hash("bad\xff", NTLM)
	require.ErrorIs(t, err, ErrHashCandidate)
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("5F4DCC3B5AA765D61D8327DEB882CF99", "5f4dcc3b5aa765d61d8327deb882cf99"))
	assert.False(t, Equal("5f4d", "5f4e"))
}

func TestAlgorithmsSorted(t *testing.T) {
	names := Algorithms()
	require.Contains(t, names, MD5)
	require.IsNonDecreasing(t, names)
}
