// Package migrate drives the ordered top-level migration steps with
// checkpoint/resume support.
package migrate

import (
	"context"
	"fmt"
	"time"

	"confmigrate/pkg/logger"
)

// Step is one top-level unit of the migration. Steps run exactly once per
// successful migration, in order.
type Step interface {
	Name() string
	Run(ctx context.Context) error
}

type Runner struct {
	steps []Step
	state *State
	// savePath receives a state dump when a step fails; empty disables it.
	savePath string
}

func NewRunner(steps []Step, state *State, savePath string) *Runner {
	return &Runner{steps: steps, state: state, savePath: savePath}
}

func (r *Runner) Run(ctx context.Context) error {
	for _, step := range r.steps {
		if r.state.HasRun(step.Name()) {
			logger.Infof("Skipping previously-run step %s", step.Name())
			continue
		}

		start := time.Now()
		logger.Infof("Running step %s", step.Name())
		if err := step.Run(ctx); err != nil {
			stepErr := fmt.Errorf("step %s: %w", step.Name(), err)
			if r.savePath != "" {
				logger.Warnf("Saving restore point to %s", r.savePath)
				if saveErr := r.state.Save(r.savePath); saveErr != nil {
					logger.Errorf("Could not save restore point: %v", saveErr)
				} else {
					logger.Warnf("Restore point saved")
				}
			}
			return stepErr
		}
		r.state.MarkDone(step.Name())
		logger.Infof("Step %s finished in %.2fs", step.Name(), time.Since(start).Seconds())
	}
	return nil
}
