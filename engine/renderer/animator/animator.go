// Package animator advances the animation state of drawables once per frame, spreading the work
// over a dynamic worker pool when there is more than one target.
package animator

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-draw/engine/log"
)

// Animatable is anything whose transformation depends on time.
// Animate must only touch the target's own state.
type Animatable interface {
	Animate(time float32)
}

// animator is the implementation of the Animator interface.
type animator struct {
	mu *sync.Mutex

	targets []Animatable
	time    float32

	workers     int
	queueSize   int
	idleTimeout time.Duration
	pool        worker.DynamicWorkerPool
	taskID      int

	logger log.Logger
}

// Animator drives the animation of a set of registered targets.
//
// Targets are animated concurrently on a worker pool. Animate returns only after every target
// finished, so draws issued afterwards observe the state for the new time.
type Animator interface {
	// Add registers targets that are animated on every call to Animate.
	//
	// Parameters:
	//   - targets: the targets to register, duplicates are ignored
	Add(targets ...Animatable)

	// Remove unregisters a target.
	//
	// Parameters:
	//   - target: the target to remove
	//
	// Returns:
	//   - bool: true if the target was registered
	Remove(target Animatable) bool

	// Len returns the number of registered targets.
	Len() int

	// Time returns the time passed to the last Animate call.
	Time() float32

	// Animate evaluates every registered target and the extra targets at the given time.
	//
	// Parameters:
	//   - time: the animation time in seconds
	//   - extra: targets animated for this call only
	Animate(time float32, extra ...Animatable)
}

var _ Animator = &animator{}

// NewAnimator creates a new Animator with an empty target list.
// The worker count defaults to 4; a count below 2 animates every target on the calling goroutine.
//
// Parameters:
//   - options: variadic list of AnimatorBuilderOption functions to configure the Animator
//
// Returns:
//   - Animator: the configured animator
func NewAnimator(options ...AnimatorBuilderOption) Animator {
	a := &animator{
		mu:          &sync.Mutex{},
		workers:     4,
		queueSize:   256,
		idleTimeout: time.Second,
		logger:      log.New("animator"),
	}
	for _, opt := range options {
		opt(a)
	}

	if a.workers > 1 {
		a.pool = worker.NewDynamicWorkerPool(a.workers, a.queueSize, a.idleTimeout)
	}
	return a
}

func (a *animator) Add(targets ...Animatable) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, t := range targets {
		if t == nil || a.indexOf(t) >= 0 {
			continue
		}
		a.targets = append(a.targets, t)
	}
}

func (a *animator) Remove(target Animatable) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	i := a.indexOf(target)
	if i < 0 {
		return false
	}
	a.targets = append(a.targets[:i], a.targets[i+1:]...)
	return true
}

func (a *animator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.targets)
}

func (a *animator) Time() float32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.time
}

func (a *animator) Animate(t float32, extra ...Animatable) {
	a.mu.Lock()
	a.time = t
	targets := make([]Animatable, 0, len(a.targets)+len(extra))
	targets = append(targets, a.targets...)
	for _, e := range extra {
		if e != nil {
			targets = append(targets, e)
		}
	}
	pool := a.pool
	a.mu.Unlock()

	if pool == nil || len(targets) < 2 {
		for _, target := range targets {
			target.Animate(t)
		}
		return
	}

	// pool.Wait blocks until the workers idle out, so a WaitGroup is the per-frame barrier.
	var wg sync.WaitGroup
	for _, target := range targets {
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: a.nextTaskID(),
			Do: func() (any, error) {
				defer wg.Done()
				target.Animate(t)
				return nil, nil
			},
		})
	}
	wg.Wait()
	a.logger.Debugf("animated %d targets at t=%.3f", len(targets), t)
}

func (a *animator) nextTaskID() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.taskID++
	return a.taskID
}

// indexOf must be called with mu held.
func (a *animator) indexOf(target Animatable) int {
	for i, t := range a.targets {
		if t == target {
			return i
		}
	}
	return -1
}
