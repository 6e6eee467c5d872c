package mirror

import (
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/kennygrant/sanitize"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// File stores one JSON file per key in a directory. Expiry is honored on
// read, matching the redis backend's TTL semantics closely enough for the
// ledger's eventual-consistency needs.
type File struct {
	dir string
	now func() time.Time
}

func NewFile(dir string) *File {
	return &File{dir: dir, now: time.Now}
}

type fileEntry struct {
	ExpiresAt int64               `json:"expiresAt"`
	Value     jsoniter.RawMessage `json:"value"`
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, sanitize.BaseName(key)+".json")
}

func (f *File) Get(key string, dst interface{}) error {
	raw, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	if err != nil {
		return errors.Wrap(err, "mirror file read")
	}

	var entry fileEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return errors.Wrap(err, "mirror file decode")
	}
	if entry.ExpiresAt > 0 && f.now().Unix() > entry.ExpiresAt {
		os.Remove(f.path(key))
		return ErrNotFound
	}
	return errors.Wrap(json.Unmarshal(entry.Value, dst), "mirror value decode")
}

func (f *File) Set(key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "mirror value encode")
	}

	entry := fileEntry{Value: raw}
	if ttl > 0 {
		entry.ExpiresAt = f.now().Add(ttl).Unix()
	}
	out, err := json.Marshal(entry)
	if err != nil {
		return errors.Wrap(err, "mirror file encode")
	}
	return errors.Wrap(os.WriteFile(f.path(key), out, 0600), "mirror file write")
}
