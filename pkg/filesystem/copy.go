package filesystem

import (
	"io/fs"
	"path/filepath"

	"github.com/deplift/deplift/pkg/errors"
	"github.com/deplift/deplift/pkg/types"
)

// CopyTree recursively copies the contents of src into dst, preserving
// relative structure, file modes and symlinks. dst is created if it does
// not exist. Existing files in dst are overwritten.
func CopyTree(fsys types.FS, src, dst string) error {
	srcInfo, err := fsys.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to stat source directory %s", src)
	}

	if err := fsys.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", dst)
	}

	entries, err := fsys.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read directory %s", src)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		info, err := fsys.Lstat(srcPath)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", srcPath)
		}

		switch {
		case info.Mode()&fs.ModeSymlink != 0:
			target, err := fsys.Readlink(srcPath)
			if err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "failed to read symlink %s", srcPath)
			}
			// Replace any stale entry before linking.
			_ = fsys.Remove(dstPath)
			if err := fsys.Symlink(target, dstPath); err != nil {
				return errors.Wrapf(err, errors.ErrFileCreate, "failed to create symlink %s", dstPath)
			}
		case entry.IsDir():
			if err := CopyTree(fsys, srcPath, dstPath); err != nil {
				return err
			}
		default:
			if err := copyFile(fsys, srcPath, dstPath); err != nil {
				return err
			}
		}
	}

	return nil
}

func copyFile(fsys types.FS, src, dst string) error {
	data, err := fsys.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", src)
	}

	info, err := fsys.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", src)
	}

	if err := fsys.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", dst)
	}

	return nil
}
