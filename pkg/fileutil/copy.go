package fileutil

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// Transform rewrites file contents during a copy. rel is the slash-separated
// path relative to the copy root. Returning data unchanged copies verbatim.
type Transform func(rel string, data []byte) []byte

// CopyFile copies src to dst, creating parent directories and keeping the
// source permission bits. fn may be nil.
func CopyFile(src, dst string, fn Transform) error {
	info, err := os.Stat(src)
	if err != nil {
		return errors.Wrapf(err, "stat %s", src)
	}
	if info.IsDir() {
		return errors.Newf("%s is a directory", src)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, "reading %s", src)
	}
	if fn != nil {
		data = fn(filepath.Base(src), data)
	}
	return WriteFile(dst, data, info.Mode().Perm())
}

// CopyDir copies the tree rooted at src into dst and returns the
// slash-separated relative paths of the files written, in walk order.
// Symlinks are followed for files and skipped for directories.
func CopyDir(src, dst string, fn Transform) ([]string, error) {
	if !IsDir(src) {
		return nil, errors.Newf("%s is not a directory", src)
	}

	var written []string
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		info, err := os.Stat(path)
		if err != nil {
			return errors.Wrapf(err, "stat %s", path)
		}
		if info.IsDir() {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "reading %s", path)
		}
		slashRel := filepath.ToSlash(rel)
		if fn != nil {
			data = fn(slashRel, data)
		}
		if err := WriteFile(target, data, info.Mode().Perm()); err != nil {
			return err
		}
		written = append(written, slashRel)
		return nil
	})
	if err != nil {
		return written, errors.Wrapf(err, "copying %s", src)
	}
	return written, nil
}
