// Package storage resolves legacy archive files into the configured
// storage backend, dealing with the encoding damage accumulated in
// decades of uploaded filenames.
package storage

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
)

// FileInfo describes where a migrated file lives and what it contains.
type FileInfo struct {
	Backend string
	Path    string
	Size    int64
	MD5     string
}

// Resolver locates legacy files under the configured archive directories.
type Resolver struct {
	ArchiveDirs    []string
	Backend        string
	SymlinkBackend string
	SymlinkTarget  string
	// SkipChecks disables all disk access for decodable paths: files are
	// recorded with size 0 and no checksum, whether they exist or not.
	SkipChecks bool
}

// Resolve finds repoPath under the archive dirs, tried in order. Returns
// ErrFileMissing when no candidate exists on disk. With SkipChecks the
// recorded path is returned without touching the disk at all, so a missing
// file is not detected; non-UTF-8 paths still go through the symlink path.
func (r *Resolver) Resolve(repoPath string) (*FileInfo, error) {
	if r.SkipChecks && utf8.ValidString(repoPath) {
		return &FileInfo{Backend: r.Backend, Path: path.Clean(repoPath)}, nil
	}
	for _, dir := range r.ArchiveDirs {
		path, ok := r.locate(dir, repoPath)
		if !ok {
			continue
		}

		info := &FileInfo{Backend: r.Backend}
		if !r.SkipChecks {
			st, err := os.Stat(path)
			if err != nil {
				continue
			}
			info.Size = st.Size()
			sum, err := fileMD5(path)
			if err != nil {
				return nil, err
			}
			info.MD5 = sum
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return nil, err
		}
		if !utf8.ValidString(rel) {
			// The on-disk name cannot be stored as text; keep a symlink
			// with a clean name instead and record that.
			if r.SymlinkTarget == "" {
				return nil, ErrFileMissing
			}
			name := uuid.New().String()
			link := filepath.Join(r.SymlinkTarget, name)
			if err := os.Symlink(path, link); err != nil {
				return nil, fmt.Errorf("failed to symlink %q: %w", path, err)
			}
			info.Backend = r.SymlinkBackend
			info.Path = name
			return info, nil
		}
		info.Path = rel
		return info, nil
	}
	return nil, ErrFileMissing
}

var ErrFileMissing = fmt.Errorf("storage: file not found in archive")

// locate returns the first on-disk candidate for repoPath under dir.
// Legacy paths were written with inconsistent encodings, so a Latin-1
// reencoding is tried before falling back to a single-entry parent scan.
func (r *Resolver) locate(dir, repoPath string) (string, bool) {
	path := filepath.Join(dir, filepath.FromSlash(repoPath))
	if _, err := os.Stat(path); err == nil {
		return path, true
	}

	if enc, err := charmap.ISO8859_1.NewEncoder().String(repoPath); err == nil && enc != repoPath {
		candidate := filepath.Join(dir, filepath.FromSlash(enc))
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}

	// Last resort: if the parent directory holds exactly one entry, the
	// file was renamed by a broken encoder and that entry is it.
	parent := filepath.Dir(path)
	entries, err := os.ReadDir(parent)
	if err != nil || len(entries) != 1 {
		return "", false
	}
	candidate := filepath.Join(parent, entries[0].Name())
	if _, err := os.Stat(candidate); err != nil {
		return "", false
	}
	return candidate, true
}

func fileMD5(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to checksum %q: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
