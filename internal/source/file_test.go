package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDump(t *testing.T, dir, name, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name+".jsonl"), []byte(content), 0o644)
	require.NoError(t, err)
}

func TestDirStoreIter(t *testing.T) {
	dir := t.TempDir()
	writeDump(t, dir, CollAvatars,
		`{"id":"2","firstName":"Marie","surName":"Curie","email":"marie@example.com"}
{"id":"1","firstName":"Paul","surName":"Dirac","email":"paul@example.com"}
`)

	store, err := Open(context.Background(), "file://"+dir)
	require.NoError(t, err)
	defer store.Close(context.Background())

	cur, err := store.Collection(CollAvatars).Iter(context.Background())
	require.NoError(t, err)
	defer cur.Close(context.Background())

	var ids []string
	for cur.Next(context.Background()) {
		var av Avatar
		require.NoError(t, cur.Decode(&av))
		ids = append(ids, av.ID)
	}
	require.NoError(t, cur.Err())
	// ordered by id regardless of file order
	assert.Equal(t, []string{"1", "2"}, ids)
}

func TestDirStoreFindID(t *testing.T) {
	dir := t.TempDir()
	writeDump(t, dir, CollSettings, `{"id":"main","title":"My Conferences","timezone":"Europe/Zurich"}`)

	store, err := Open(context.Background(), "file://"+dir)
	require.NoError(t, err)

	var settings Settings
	require.NoError(t, store.Collection(CollSettings).FindID(context.Background(), "main", &settings))
	assert.Equal(t, "My Conferences", settings.Title)
	assert.Equal(t, "Europe/Zurich", settings.Timezone)

	err = store.Collection(CollSettings).FindID(context.Background(), "other", &settings)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDirStoreMissingCollection(t *testing.T) {
	store, err := Open(context.Background(), "file://"+t.TempDir())
	require.NoError(t, err)

	n, err := store.Collection(CollGroups).Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	cur, err := store.Collection(CollGroups).Iter(context.Background())
	require.NoError(t, err)
	assert.False(t, cur.Next(context.Background()))
}

func TestOpenRejectsUnknownScheme(t *testing.T) {
	_, err := Open(context.Background(), "zeo://localhost:9675")
	assert.Error(t, err)
}
