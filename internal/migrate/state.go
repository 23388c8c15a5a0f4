package migrate

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// State is the checkpoint written on failure and read back on resume:
// the names of completed top-level steps plus the shared namespace.
type State struct {
	CompletedSteps []string   `yaml:"completed_steps"`
	Namespace      *Namespace `yaml:"namespace"`
}

func NewState() *State {
	return &State{Namespace: NewNamespace()}
}

// LoadState reads a restore file written by a previous failed run.
func LoadState(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read restore file %q: %w", path, err)
	}
	state := NewState()
	if err := yaml.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("failed to parse restore file %q: %w", path, err)
	}
	if state.Namespace == nil {
		state.Namespace = NewNamespace()
	}
	return state, nil
}

func (s *State) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode restore state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write restore file %q: %w", path, err)
	}
	return nil
}

func (s *State) HasRun(step string) bool {
	return slices.Contains(s.CompletedSteps, step)
}

func (s *State) MarkDone(step string) {
	if !s.HasRun(step) {
		s.CompletedSteps = append(s.CompletedSteps, step)
	}
}
