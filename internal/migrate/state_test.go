package migrate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateRoundTrip(t *testing.T) {
	state := NewState()
	state.MarkDone("settings")
	state.MarkDone("users")
	state.Namespace.UserByAvatar["12"] = 3
	state.Namespace.UsersByEmail["a@b.org"] = 3
	state.Namespace.CategoryByLegacyID["0"] = 1
	state.Namespace.SystemUserID = 0
	state.Namespace.LostFoundCategory = 99

	path := filepath.Join(t.TempDir(), "restore.yaml")
	require.NoError(t, state.Save(path))

	loaded, err := LoadState(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"settings", "users"}, loaded.CompletedSteps)
	assert.Equal(t, 3, loaded.Namespace.UserByAvatar["12"])
	assert.Equal(t, 3, loaded.Namespace.UsersByEmail["a@b.org"])
	assert.Equal(t, 99, loaded.Namespace.LostFoundCategory)
	assert.True(t, loaded.HasRun("users"))
	assert.False(t, loaded.HasRun("events"))
}

func TestLoadStateMissingFile(t *testing.T) {
	_, err := LoadState(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestMarkDoneIdempotent(t *testing.T) {
	state := NewState()
	state.MarkDone("users")
	state.MarkDone("users")
	assert.Equal(t, []string{"users"}, state.CompletedSteps)
}
