package generator

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// Write stores the result at r.Path. A file that already holds the same bytes
// is left untouched and Write reports false; otherwise the file is replaced
// atomically through a temporary file in the same directory.
func (r *Result) Write() (bool, error) {
	if existing, err := os.ReadFile(r.Path); err == nil && bytes.Equal(existing, r.Source) {
		slog.Debug("output unchanged", "path", r.Path)
		return false, nil
	}

	dir := filepath.Dir(r.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, errors.Wrapf(err, "create output directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.Path)+".*.tmp")
	if err != nil {
		return false, errors.Wrapf(err, "create temporary file in %s", dir)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(r.Source); err != nil {
		return false, errors.Wrapf(err, "write %s", tmpName)
	}
	if err = tmp.Sync(); err != nil {
		return false, errors.Wrapf(err, "sync %s", tmpName)
	}
	if err = tmp.Close(); err != nil {
		return false, errors.Wrapf(err, "close %s", tmpName)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return false, errors.Wrapf(err, "chmod %s", tmpName)
	}
	if err = os.Rename(tmpName, r.Path); err != nil {
		_ = os.Remove(tmpName)
		return false, errors.Wrapf(err, "replace %s", r.Path)
	}
	committed = true

	slog.Debug("wrote output", "path", r.Path, "bytes", len(r.Source))
	return true, nil
}
