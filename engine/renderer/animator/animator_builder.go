package animator

import "time"

// AnimatorBuilderOption is a functional option for configuring an Animator during construction.
type AnimatorBuilderOption func(*animator)

// WithWorkers is an option builder that sets the maximum number of pool workers.
// Values below 2 disable the pool and animate on the calling goroutine.
//
// Parameters:
//   - workers: the maximum number of concurrent workers
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the workers option to an animator
func WithWorkers(workers int) AnimatorBuilderOption {
	return func(a *animator) {
		a.workers = workers
	}
}

// WithQueueSize is an option builder that sets the task queue size of the worker pool.
//
// Parameters:
//   - size: the number of tasks that can be queued before SubmitTask blocks
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the queue size option to an animator
func WithQueueSize(size int) AnimatorBuilderOption {
	return func(a *animator) {
		if size > 0 {
			a.queueSize = size
		}
	}
}

// WithIdleTimeout is an option builder that sets how long an idle worker lives before exiting.
//
// Parameters:
//   - timeout: the idle duration
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the idle timeout option to an animator
func WithIdleTimeout(timeout time.Duration) AnimatorBuilderOption {
	return func(a *animator) {
		if timeout > 0 {
			a.idleTimeout = timeout
		}
	}
}

// WithTargets is an option builder that registers targets at construction.
func WithTargets(targets ...Animatable) AnimatorBuilderOption {
	return func(a *animator) {
		a.Add(targets...)
	}
}
