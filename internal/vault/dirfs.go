package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound is returned when a note or folder does not exist.
var ErrNotFound = errors.New("not found")

// Persistence is the note storage the workout store and daily note
// integration run on. Paths are vault-relative and slash-separated.
type Persistence interface {
	Read(ctx context.Context, p string) (string, error)
	Write(ctx context.Context, p, content string) error
	Exists(ctx context.Context, p string) (bool, error)
	CreateFolder(ctx context.Context, p string) error
	// List returns the files under folder, recursively, in lexical order.
	List(ctx context.Context, folder string) ([]string, error)
}

// DirFS is a Persistence rooted at a directory on disk.
type DirFS struct {
	root string
}

// NewDirFS returns a DirFS rooted at root.
func NewDirFS(root string) *DirFS {
	return &DirFS{root: root}
}

// Root returns the directory the vault lives in.
func (d *DirFS) Root() string { return d.root }

func (d *DirFS) abs(p string) (string, error) {
	clean := path.Clean(strings.TrimPrefix(p, "/"))
	if clean == "." {
		return d.root, nil
	}
	if !filepath.IsLocal(filepath.FromSlash(clean)) {
		return "", fmt.Errorf("path %q escapes the vault", p)
	}
	return filepath.Join(d.root, filepath.FromSlash(clean)), nil
}

func (d *DirFS) Read(ctx context.Context, p string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	full, err := d.abs(p)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(full)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("reading %s: %w", p, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", p, err)
	}
	return string(data), nil
}

// Write creates or replaces a file. The parent folder must exist.
func (d *DirFS) Write(ctx context.Context, p, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := d.abs(p)
	if err != nil {
		return err
	}
	tmp := full + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0644); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("writing %s: %w", p, ErrNotFound)
		}
		return fmt.Errorf("writing %s: %w", p, err)
	}
	if err := os.Rename(tmp, full); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", p, err)
	}
	return nil
}

func (d *DirFS) Exists(ctx context.Context, p string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	full, err := d.abs(p)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", p, err)
	}
	return true, nil
}

func (d *DirFS) CreateFolder(ctx context.Context, p string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := d.abs(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(full, 0755); err != nil {
		return fmt.Errorf("creating folder %s: %w", p, err)
	}
	return nil
}

func (d *DirFS) List(ctx context.Context, folder string) ([]string, error) {
	full, err := d.abs(folder)
	if err != nil {
		return nil, err
	}
	var files []string
	err = filepath.WalkDir(full, func(p string, e fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(d.root, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("listing %s: %w", folder, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", folder, err)
	}
	sort.Strings(files)
	return files, nil
}
