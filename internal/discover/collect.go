package discover

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"audiobind/internal/media"
	"audiobind/internal/services"
)

// CollectMediaFiles walks root depth-first in lexical order and returns every
// supported audio file. Hidden entries are skipped. An empty result is an
// error matching services.ErrNoMediaFiles.
func CollectMediaFiles(root string) ([]media.Input, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrValidation, "discover", "", root+" does not exist", nil)
		}
		return nil, services.Wrap(services.ErrIO, "discover", "stat", root, err)
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrValidation, "discover", "", root+" is not a directory", nil)
	}

	var inputs []media.Input
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if in := media.NewInput(path); in.Format.Supported() {
			inputs = append(inputs, in)
		}
		return nil
	})
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "discover", "walk", root, err)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w in %s", services.ErrNoMediaFiles, root)
	}
	return inputs, nil
}

// Files returns the sorted regular files in dir whose format is one of
// formats. It does not recurse.
func Files(dir string, formats ...media.Format) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "discover", "read dir", dir, err)
	}
	var out []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		format := media.FormatFromPath(entry.Name())
		for _, f := range formats {
			if format == f {
				out = append(out, filepath.Join(dir, entry.Name()))
				break
			}
		}
	}
	return out, nil
}
