package patterncache_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hexnum/patterncache"
)

func TestReadText(t *testing.T) {
	in := `# number,pattern
# generated earlier

30,aqaaeee
  21 , aqaaeew
-7,deddqww
`
	got, err := patterncache.ReadText(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []patterncache.Entry{
		{Number: 30, Pattern: "aqaaeee"},
		{Number: 21, Pattern: "aqaaeew"},
		{Number: -7, Pattern: "deddqww"},
	}, got)
}

func TestReadText_Malformed(t *testing.T) {
	for _, in := range []string{"30 aqaaeee", "x,aqaaw", "1,", "1.5,aqaaw"} {
		_, err := patterncache.ReadText(strings.NewReader(in))
		assert.ErrorIs(t, err, patterncache.ErrMalformed, "input %q", in)
	}
}

func TestWriteText_SortedDescending(t *testing.T) {
	entries := []patterncache.Entry{
		{Number: -7, Pattern: "deddqww"},
		{Number: 30, Pattern: "aqaaeee"},
		{Number: 1, Pattern: "aqaaw"},
	}
	var buf bytes.Buffer
	require.NoError(t, patterncache.WriteText(&buf, entries))
	assert.Equal(t, "# number,pattern\n30,aqaaeee\n1,aqaaw\n-7,deddqww\n", buf.String())
	assert.Equal(t, int64(-7), entries[0].Number, "input left untouched")

	back, err := patterncache.ReadText(&buf)
	require.NoError(t, err)
	assert.Len(t, back, 3)
}

func TestTextStore_LoadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "patterns.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("1,aqaaw\n1,aqaawq\n"), 0o644))

	st, err := patterncache.OpenText(path)
	require.NoError(t, err)
	defer st.Close()

	p, ok, err := st.Get(t.Context(), 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "aqaawq", p, "later line wins")
	assert.Equal(t, path, st.Path())
}

func TestTextStore_RejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.txt")
	require.NoError(t, os.WriteFile(path, []byte("garbage\n"), 0o644))
	_, err := patterncache.OpenText(path)
	assert.ErrorIs(t, err, patterncache.ErrMalformed)
}

func TestTextStore_ImportWritesOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.txt")
	st, err := patterncache.OpenText(path)
	require.NoError(t, err)
	defer st.Close()

	entries := make([]patterncache.Entry, 5000)
	for i := range entries {
		entries[i] = patterncache.Entry{Number: int64(i + 1), Pattern: "aqaaw"}
	}
	n, err := patterncache.Import(t.Context(), st, entries)
	require.NoError(t, err)
	require.Equal(t, 5000, n)
	assert.Equal(t, 1, st.Writes())

	_, err = patterncache.Import(t.Context(), st, entries)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Writes(), "unchanged entries are not rewritten")

	back, err := os.ReadFile(path)
	require.NoError(t, err)
	got, err := patterncache.ReadText(bytes.NewReader(back))
	require.NoError(t, err)
	assert.Len(t, got, 5000)
}

func TestTextStore_PutBuffersWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.txt")
	st, err := patterncache.OpenText(path)
	require.NoError(t, err)

	for i := 1; i < patterncache.FlushEvery; i++ {
		require.NoError(t, st.Put(t.Context(), int64(i), "aqaaw"))
	}
	assert.Zero(t, st.Writes())
	assert.NoFileExists(t, path)

	require.NoError(t, st.Put(t.Context(), patterncache.FlushEvery, "aqaaw"))
	assert.Equal(t, 1, st.Writes(), "full buffer is written")

	require.NoError(t, st.Delete(t.Context(), 1))
	assert.Equal(t, 1, st.Writes())
	require.NoError(t, st.Flush())
	assert.Equal(t, 2, st.Writes())
	require.NoError(t, st.Flush())
	assert.Equal(t, 2, st.Writes(), "nothing pending")

	require.NoError(t, st.Put(t.Context(), -1, "deddw"))
	require.NoError(t, st.Close())
	assert.ErrorIs(t, st.Flush(), patterncache.ErrClosed)

	reopened, err := patterncache.OpenText(path)
	require.NoError(t, err)
	defer reopened.Close()
	all, err := reopened.All(t.Context())
	require.NoError(t, err)
	assert.Len(t, all, patterncache.FlushEvery)
	_, ok, err := reopened.Get(t.Context(), 1)
	require.NoError(t, err)
	assert.False(t, ok)
}
