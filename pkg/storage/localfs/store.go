// Package localfs is a filesystem-backed probe, used to exercise code paths
// that normally talk to S3.
package localfs

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/mlcup/dvcboot/pkg/storage"
)

// New creates a probe over the given filesystem. A nil fs defaults to the
// OS filesystem.
func New(fs afero.Fs) storage.Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &localFS{fs: fs}
}

type localFS struct {
	fs afero.Fs
}

func (l *localFS) Has(ctx context.Context, key string) (bool, error) {
	fi, err := l.fs.Stat(key)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !fi.IsDir(), nil
}

func (l *localFS) KeysPrefix(ctx context.Context, prefix string, limit int) ([]string, error) {
	var keys []string
	err := afero.Walk(l.fs, ".", func(path string, info os.FileInfo, err error) error {
		if err != nil || info == nil || info.IsDir() {
			return nil
		}
		key := strings.TrimPrefix(path, "/")
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	return keys, nil
}

func (l *localFS) String() string {
	return "localfs"
}
