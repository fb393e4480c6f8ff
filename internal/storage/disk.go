package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Disk stores artifacts as plain files under a single root directory.
type Disk struct {
	root string
}

func NewDisk(root string) *Disk {
	return &Disk{root: root}
}

// cleanName confines name to a bare file name directly under the root.
// Anything carrying a separator or a traversal segment is treated as absent
// rather than resolved.
func (d *Disk) cleanName(name string) (string, error) {
	if name == "" || name == "." || name == ".." {
		return "", ErrNotFound
	}
	if strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return "", ErrNotFound
	}
	return filepath.Join(d.root, name), nil
}

func (d *Disk) Save(ctx context.Context, name string, r io.Reader) error {
	path, err := d.cleanName(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d.root, os.ModePerm); err != nil {
		return fmt.Errorf("creating upload directory: %w", err)
	}
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, r)
	return err
}

func (d *Disk) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	path, err := d.cleanName(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (d *Disk) Exists(ctx context.Context, name string) (bool, error) {
	path, err := d.cleanName(name)
	if err != nil {
		return false, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
