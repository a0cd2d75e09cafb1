package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/lawbridge/go-session-core/store"
	"github.com/rs/zerolog"
)

var _ store.Store = (*FileStore)(nil)

// FileStore persists the key/value namespace as a single JSON file, rewritten
// synchronously on every mutation so a reload immediately after a call
// observes consistent state. Write failures are logged and swallowed per the
// best-effort store contract.
type FileStore struct {
	path   string
	log    zerolog.Logger
	values map[string]string
	lock   sync.RWMutex
}

// New loads the file at path if it exists. An unreadable or corrupt file is
// treated as an empty namespace, not an error.
func New(path string, log zerolog.Logger) *FileStore {
	fs := &FileStore{
		path:   path,
		log:    log,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			fs.log.Warn().Err(err).Str("path", path).Msg("session store unreadable, starting empty")
		}
		return fs
	}
	if err := json.Unmarshal(data, &fs.values); err != nil {
		fs.log.Warn().Err(err).Str("path", path).Msg("session store corrupt, starting empty")
		fs.values = make(map[string]string)
	}
	return fs
}

func (fs *FileStore) Write(key, value string) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	fs.values[key] = value
	fs.flush()
}

func (fs *FileStore) Read(key string) (string, bool) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()

	value, ok := fs.values[key]
	return value, ok
}

func (fs *FileStore) Remove(key string) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if _, ok := fs.values[key]; !ok {
		return
	}
	delete(fs.values, key)
	fs.flush()
}

// flush rewrites the backing file. Callers must hold the write lock.
func (fs *FileStore) flush() {
	data, err := json.MarshalIndent(fs.values, "", "  ")
	if err != nil {
		fs.log.Error().Err(err).Msg("session store marshal failed")
		return
	}
	tmp := fs.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o755); err != nil {
		fs.log.Error().Err(err).Msg("session store mkdir failed")
		return
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		fs.log.Error().Err(err).Msg("session store write failed")
		return
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		fs.log.Error().Err(err).Msg("session store rename failed")
	}
}
