package worker

import (
	"context"
	"sync"

	"storefront-events/pkg/logger"

	"go.uber.org/zap"
)

// Task is a long-running loop the Runner owns.
type Task interface {
	Name() string
	State() State
	Run(ctx context.Context)
}

type Runner struct {
	log   *logger.Logger
	tasks []Task
	wg    sync.WaitGroup
}

func NewRunner(log *logger.Logger, tasks ...Task) *Runner {
	if log == nil {
		log = logger.NewNop()
	}
	return &Runner{log: log, tasks: tasks}
}

// Start launches every task on its own goroutine. Cancel ctx to stop them.
func (r *Runner) Start(ctx context.Context) {
	for _, t := range r.tasks {
		r.wg.Add(1)
		go func(t Task) {
			defer r.wg.Done()
			t.Run(ctx)
		}(t)
	}
	r.log.Info("workers started", zap.Int("count", len(r.tasks)))
}

// Wait blocks until every task has returned.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) States() map[string]State {
	out := make(map[string]State, len(r.tasks))
	for _, t := range r.tasks {
		out[t.Name()] = t.State()
	}
	return out
}
