package migrate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStep struct {
	name string
	err  error
	runs int
}

func (s *fakeStep) Name() string { return s.name }

func (s *fakeStep) Run(context.Context) error {
	s.runs++
	return s.err
}

func TestRunnerRunsStepsInOrder(t *testing.T) {
	a := &fakeStep{name: "a"}
	b := &fakeStep{name: "b"}
	state := NewState()

	r := NewRunner([]Step{a, b}, state, "")
	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 1, a.runs)
	assert.Equal(t, 1, b.runs)
	assert.Equal(t, []string{"a", "b"}, state.CompletedSteps)
}

func TestRunnerSkipsCompletedSteps(t *testing.T) {
	a := &fakeStep{name: "a"}
	b := &fakeStep{name: "b"}
	state := NewState()
	state.MarkDone("a")

	r := NewRunner([]Step{a, b}, state, "")
	require.NoError(t, r.Run(context.Background()))
	assert.Zero(t, a.runs)
	assert.Equal(t, 1, b.runs)
}

func TestRunnerStopsOnFailure(t *testing.T) {
	boom := errors.New("boom")
	a := &fakeStep{name: "a"}
	b := &fakeStep{name: "b", err: boom}
	c := &fakeStep{name: "c"}
	state := NewState()

	r := NewRunner([]Step{a, b, c}, state, "")
	err := r.Run(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Zero(t, c.runs)
	assert.Equal(t, []string{"a"}, state.CompletedSteps)
}

func TestRunnerSavesRestorePointOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restore.yaml")
	a := &fakeStep{name: "a"}
	b := &fakeStep{name: "b", err: errors.New("boom")}
	state := NewState()
	state.Namespace.UserByAvatar["5"] = 1

	r := NewRunner([]Step{a, b}, state, path)
	require.Error(t, r.Run(context.Background()))

	_, err := os.Stat(path)
	require.NoError(t, err)

	loaded, err := LoadState(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, loaded.CompletedSteps)
	assert.Equal(t, 1, loaded.Namespace.UserByAvatar["5"])
}
