// Package initialize writes a starter manifest.
package initialize

import (
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/propkeygen/pkg/manifest"
)

// ErrExists is returned when the manifest is already present and force is not set.
var ErrExists = errors.New("manifest already exists")

// Generate writes manifest.Sample to path. An existing file is only replaced
// when force is set.
func Generate(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.WithHint(errors.Wrap(ErrExists, path), "pass --force to overwrite it")
	}
	if err := manifest.Sample().Save(path); err != nil {
		return err
	}
	slog.Debug("wrote manifest", "path", path)
	return nil
}
