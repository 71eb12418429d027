// Package worker provides the long-lived background execution context that
// runs network-bound tasks off the UI event loop. Tasks are submitted from
// the UI side and observed through one-shot handles; the context itself
// never fails, individual tasks do.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/TiepCB-lab/Bao/internal/logger"
)

// ErrNotRunning is returned by Submit when the pool has not been started or
// has already been shut down.
var ErrNotRunning = errors.New("worker pool is not running")

// Task is one asynchronous unit of work with exactly one eventual outcome.
// The context is the pool's lifetime context and is cancelled on Shutdown.
type Task func(ctx context.Context) (any, error)

// Result carries a finished task's outcome: a value or an error, never both.
type Result struct {
	Value any
	Err   error
}

// Handle observes a submitted task's outcome. Exactly one Result arrives on
// Done per submitted task.
type Handle struct {
	done chan Result
}

func (h *Handle) Done() <-chan Result { return h.done }

type submission struct {
	task   Task
	handle *Handle
}

// Pool runs submitted tasks concurrently on background goroutines. It is
// started once and cannot be restarted.
type Pool struct {
	mu      sync.Mutex
	started bool
	stopped bool

	subs   chan submission
	ctx    context.Context
	cancel context.CancelFunc
}

func New() *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		subs:   make(chan submission, 16),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start spins up the run loop. Calling Start again has no effect.
func (p *Pool) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.stopped {
		return
	}
	p.started = true
	go p.run()
	logger.Debugf("worker pool started")
}

// Submit enqueues task for execution and returns the handle observing its
// outcome. It does not block the caller: the run loop drains submissions
// immediately, and a stopped pool is reported as an error instead.
func (p *Pool) Submit(task Task) (*Handle, error) {
	p.mu.Lock()
	running := p.started && !p.stopped
	p.mu.Unlock()
	if !running {
		return nil, ErrNotRunning
	}

	// Buffered so a completion after Shutdown is dropped, not leaked.
	handle := &Handle{done: make(chan Result, 1)}
	select {
	case p.subs <- submission{task: task, handle: handle}:
		return handle, nil
	case <-p.ctx.Done():
		return nil, ErrNotRunning
	}
}

// Shutdown stops accepting new work and abandons in-flight tasks. It does
// not block; results that complete afterwards may go unobserved.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	p.stopped = true
	p.cancel()
	logger.Debugf("worker pool shut down")
}

func (p *Pool) run() {
	for {
		select {
		case <-p.ctx.Done():
			return
		case sub := <-p.subs:
			go p.execute(sub)
		}
	}
}

// execute delivers exactly one Result. A panicking task is converted into a
// task failure rather than tearing down the pool.
func (p *Pool) execute(sub submission) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("task panic: %v", r)
			sub.handle.done <- Result{Err: fmt.Errorf("task panicked: %v", r)}
		}
	}()
	value, err := sub.task(p.ctx)
	sub.handle.done <- Result{Value: value, Err: err}
}
