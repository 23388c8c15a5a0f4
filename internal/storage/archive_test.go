package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2009/ev42/minutes.pdf", "pdf-bytes")

	r := &Resolver{ArchiveDirs: []string{dir}, Backend: "legacy-fs"}
	info, err := r.Resolve("2009/ev42/minutes.pdf")
	require.NoError(t, err)
	assert.Equal(t, "legacy-fs", info.Backend)
	assert.Equal(t, filepath.Join("2009", "ev42", "minutes.pdf"), info.Path)
	assert.Equal(t, int64(len("pdf-bytes")), info.Size)
	// md5 of "pdf-bytes"
	assert.Len(t, info.MD5, 32)
}

func TestResolveTriesDirsInOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeFile(t, second, "a/b.txt", "in-second")

	r := &Resolver{ArchiveDirs: []string{first, second}, Backend: "fs"}
	info, err := r.Resolve("a/b.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("a", "b.txt"), info.Path)
	assert.Equal(t, int64(len("in-second")), info.Size)
}

func TestResolveMissing(t *testing.T) {
	r := &Resolver{ArchiveDirs: []string{t.TempDir()}, Backend: "fs"}
	_, err := r.Resolve("nope/missing.bin")
	assert.ErrorIs(t, err, ErrFileMissing)
}

func TestResolveSkipChecks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "x/y.dat", "contents")

	r := &Resolver{ArchiveDirs: []string{dir}, Backend: "fs", SkipChecks: true}
	info, err := r.Resolve("x/y.dat")
	require.NoError(t, err)
	assert.Equal(t, "x/y.dat", info.Path)
	assert.Zero(t, info.Size)
	assert.Empty(t, info.MD5)
}

func TestResolveSkipChecksMissingFile(t *testing.T) {
	// no existence check at all: a path that is not on disk still resolves
	r := &Resolver{ArchiveDirs: []string{t.TempDir()}, Backend: "fs", SkipChecks: true}
	info, err := r.Resolve("2009/ev1/gone.pdf")
	require.NoError(t, err)
	assert.Equal(t, "fs", info.Backend)
	assert.Equal(t, "2009/ev1/gone.pdf", info.Path)
	assert.Zero(t, info.Size)
	assert.Empty(t, info.MD5)
}

func TestResolveSingleCandidateFallback(t *testing.T) {
	// The recorded name does not exist but the parent dir holds exactly
	// one file: that file is taken.
	dir := t.TempDir()
	writeFile(t, dir, "ev7/renamed-by-encoder.doc", "doc")

	r := &Resolver{ArchiveDirs: []string{dir}, Backend: "fs"}
	info, err := r.Resolve("ev7/résumé.doc")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(info.Path, "renamed-by-encoder.doc"))
}

func TestStorePhoto(t *testing.T) {
	archive := t.TempDir()
	photos := t.TempDir()
	src := writeFile(t, photos, "b28-1-015.jpg", "jpeg-bytes")

	r := &Resolver{ArchiveDirs: []string{archive}, Backend: "fs"}
	info, err := r.StorePhoto(src)
	require.NoError(t, err)
	assert.Equal(t, int64(len("jpeg-bytes")), info.Size)
	assert.True(t, strings.HasPrefix(info.Path, "room_photos/"))
	assert.True(t, strings.HasSuffix(info.Path, ".jpg"))

	copied, err := os.ReadFile(filepath.Join(archive, filepath.FromSlash(info.Path)))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(copied))
}
