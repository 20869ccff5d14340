package wordlist

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeDict(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dict.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSeedsTrimAndSkipBlank(t *testing.T) {
	path := writeDict(t, "  admin \n\n\t\nroot\r\n   \nletmein")
	src, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	got := slices.Collect(src.Seeds())
	require.Equal(t, []string{"admin", "root", "letmein"}, got)
	require.NoError(t, src.Err())
}

func TestSeedsSinglePass(t *testing.T) {
	src := FromReader("mem", strings.NewReader("a\nb\n"))
	require.Len(t, slices.Collect(src.Seeds()), 2)
	require.Empty(t, slices.Collect(src.Seeds()))
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSeedsReadError(t *testing.T) {
	boom := errors.New("disk on fire")
	src := FromReader("broken", io.MultiReader(strings.NewReader("first\n"), failingReader{err: boom}))
	got := slices.Collect(src.Seeds())
	require.Equal(t, []string{"first"}, got)

	var readErr *ReadError
	require.ErrorAs(t, src.Err(), &readErr)
	require.ErrorIs(t, src.Err(), boom)
}

func TestSeedsFilters(t *testing.T) {
	src := FromReader("mem", strings.NewReader("admin\nnaïve\nroot\n"), FilterForCharset("ascii"))
	require.Equal(t, []string{"admin", "root"}, slices.Collect(src.Seeds()))
}

func TestOpenBlankDictionaryYieldsNothing(t *testing.T) {
	path := writeDict(t, "\n \n")
	src, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })
	require.Empty(t, slices.Collect(src.Seeds()))
	require.NoError(t, src.Err())
}

type failingReader struct {
	err error
}

func (f failingReader) Read([]byte) (int, error) {
	return 0, f.err
}
