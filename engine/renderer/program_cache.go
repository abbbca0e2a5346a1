package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-draw/engine/log"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/gpu"
	"github.com/Carmen-Shannon/oxy-draw/engine/renderer/shader"
)

// ProgramError is returned when the program of a key cannot be built or used.
type ProgramError struct {
	Key ProgramKey
	Err error
}

func (e *ProgramError) Error() string {
	return fmt.Sprintf("renderer: program %s: %v", e.Key, e.Err)
}

func (e *ProgramError) Unwrap() error {
	return e.Err
}

// CacheStats counts program cache activity.
type CacheStats struct {
	// Programs is the number of programs compiled successfully.
	Programs int

	// Hits counts lookups answered from the cache, including cached failures.
	Hits int

	// Misses counts lookups that composed and compiled source.
	Misses int

	// Failures counts keys whose source failed to process or compile.
	Failures int
}

func (s CacheStats) String() string {
	return fmt.Sprintf("Programs: %d (hits: %d, misses: %d, failures: %d)", s.Programs, s.Hits, s.Misses, s.Failures)
}

// ProgramCache compiles each distinct ProgramKey at most once per context.
// A key that failed once keeps failing with the same error without recompiling.
type ProgramCache struct {
	mu *sync.Mutex

	ctx          gpu.Context
	preProcessor shader.PreProcessor
	programs     map[ProgramKey]gpu.Program
	failures     map[ProgramKey]*ProgramError
	stats        CacheStats

	logger log.Logger
}

// NewProgramCache creates an empty cache compiling through ctx.
//
// Parameters:
//   - ctx: the context that compiles and owns the programs
//
// Returns:
//   - *ProgramCache: the empty cache
func NewProgramCache(ctx gpu.Context) *ProgramCache {
	return &ProgramCache{
		mu:           &sync.Mutex{},
		ctx:          ctx,
		preProcessor: shader.NewPreProcessor(),
		programs:     make(map[ProgramKey]gpu.Program),
		failures:     make(map[ProgramKey]*ProgramError),
		logger:       log.New("renderer"),
	}
}

// Program returns the program cached under key, compiling it on a miss.
// The source function is only called on a miss.
//
// Parameters:
//   - key: the identity of the program
//   - source: returns the annotated vertex and fragment WGSL of the key
//
// Returns:
//   - gpu.Program: the cached or newly compiled program
//   - error: a *ProgramError wrapping the pre-processor or compiler error
func (c *ProgramCache) Program(key ProgramKey, source func() string) (gpu.Program, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.programs[key]; ok {
		c.stats.Hits++
		return p, nil
	}
	if err, ok := c.failures[key]; ok {
		c.stats.Hits++
		return nil, err
	}
	c.stats.Misses++

	processed, err := c.preProcessor.Process(source())
	if err != nil {
		return nil, c.fail(key, fmt.Errorf("processing shader source: %w", err))
	}
	p, err := c.ctx.CompileProgram(key.String(), processed)
	if err != nil {
		return nil, c.fail(key, err)
	}

	c.programs[key] = p
	c.stats.Programs++
	c.logger.Infof("compiled program %s", key)
	return p, nil
}

// fail must be called with mu held.
func (c *ProgramCache) fail(key ProgramKey, err error) *ProgramError {
	pe := &ProgramError{Key: key, Err: err}
	c.failures[key] = pe
	c.stats.Failures++
	c.logger.Errorf("%v", pe)
	return pe
}

// Lookup returns the program cached under key without compiling.
func (c *ProgramCache) Lookup(key ProgramKey) (gpu.Program, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.programs[key]
	return p, ok
}

// Len returns the number of compiled programs.
func (c *ProgramCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.programs)
}

// Stats returns a snapshot of the cache counters.
func (c *ProgramCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Release releases every cached program and forgets cached failures.
func (c *ProgramCache) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, p := range c.programs {
		p.Release()
		delete(c.programs, key)
	}
	for key := range c.failures {
		delete(c.failures, key)
	}
	c.logger.Debugf("released program cache (%s)", c.stats)
}
