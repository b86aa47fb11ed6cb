package pipeline

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"countypaths/internal/config"
	"countypaths/internal/emit"
)

// ErrStale marks a committed module that no longer matches its inputs.
var ErrStale = errors.New("generated module is stale")

// Generate runs the pipeline and renders the module in the configured format.
func Generate(cfg *config.Config, logger *slog.Logger) ([]byte, *Result, error) {
	f, err := emit.ParseFormat(cfg.Format)
	if err != nil {
		return nil, nil, err
	}
	res, err := Run(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	b, err := emit.Render(res.Module(), f, emit.Options{GoPackage: cfg.ModulePackage})
	if err != nil {
		return nil, nil, err
	}
	return b, res, nil
}

// WriteOutput writes the module to path, or to stdout when path is empty.
// Files are replaced atomically so a failed run never leaves a partial module.
func WriteOutput(path string, b []byte, stdout io.Writer) error {
	if path == "" {
		_, err := stdout.Write(b)
		return errors.Wrap(err, "write stdout")
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(err, "create temp output")
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "write %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "close %s", tmp.Name())
	}
	return errors.Wrapf(os.Rename(tmp.Name(), path), "replace %s", path)
}

// Check regenerates the module and compares it with the file at path.
func Check(cfg *config.Config, path string, logger *slog.Logger) error {
	want, _, err := Generate(cfg, logger)
	if err != nil {
		return err
	}
	got, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}
	if bytes.Equal(got, want) {
		return nil
	}
	return errors.Mark(errors.Newf("%s differs from regenerated output at line %d; rerun countypaths", path, firstDiffLine(got, want)), ErrStale)
}

func firstDiffLine(a, b []byte) int {
	la := strings.Split(string(a), "\n")
	lb := strings.Split(string(b), "\n")
	for i := 0; i < len(la) && i < len(lb); i++ {
		if la[i] != lb[i] {
			return i + 1
		}
	}
	if len(la) < len(lb) {
		return len(la) + 1
	}
	return len(lb) + 1
}
