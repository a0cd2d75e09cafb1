package filestore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lawbridge/go-session-core/store/filestore"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func testPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func TestValuesSurviveReopen(t *testing.T) {
	path := testPath(t)

	fs := filestore.New(path, zerolog.Nop())
	fs.Write("token", "tok-1")
	fs.Write("isLoggedIn", "true")
	fs.Remove("isLoggedIn")

	reopened := filestore.New(path, zerolog.Nop())
	got, ok := reopened.Read("token")
	require.True(t, ok)
	require.Equal(t, "tok-1", got)

	_, ok = reopened.Read("isLoggedIn")
	require.False(t, ok)
}

func TestMissingFileStartsEmpty(t *testing.T) {
	fs := filestore.New(testPath(t), zerolog.Nop())
	_, ok := fs.Read("token")
	require.False(t, ok)
}

func TestCorruptFileStartsEmpty(t *testing.T) {
	path := testPath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	var fs *filestore.FileStore
	require.NotPanics(t, func() { fs = filestore.New(path, zerolog.Nop()) })
	_, ok := fs.Read("token")
	require.False(t, ok)

	// The store stays usable and rewrites the file on the next mutation.
	fs.Write("token", "tok-1")
	reopened := filestore.New(path, zerolog.Nop())
	got, ok := reopened.Read("token")
	require.True(t, ok)
	require.Equal(t, "tok-1", got)
}
