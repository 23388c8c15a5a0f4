package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const photoDir = "room_photos"

// StorePhoto copies a room photo into the first archive dir under a fresh
// name and returns its storage info.
func (r *Resolver) StorePhoto(src string) (*FileInfo, error) {
	if len(r.ArchiveDirs) == 0 {
		return nil, fmt.Errorf("storage: no archive dir configured for photos")
	}

	in, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	rel := filepath.Join(photoDir, uuid.New().String()+filepath.Ext(src))
	dest := filepath.Join(r.ArchiveDirs[0], rel)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return nil, err
	}

	out, err := os.Create(dest)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	size, err := io.Copy(out, in)
	if err != nil {
		return nil, fmt.Errorf("failed to copy photo %q: %w", src, err)
	}

	sum, err := fileMD5(dest)
	if err != nil {
		return nil, err
	}
	return &FileInfo{Backend: r.Backend, Path: filepath.ToSlash(rel), Size: size, MD5: sum}, nil
}
