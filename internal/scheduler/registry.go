package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"todo-engine/internal/errors"
	"todo-engine/internal/logging"
)

// Policy decides what happens when a job is scheduled under a key that is already taken.
type Policy int

const (
	// PolicyReplace cancels the existing job and schedules the new one.
	PolicyReplace Policy = iota
	// PolicyKeep leaves the existing job alone.
	PolicyKeep
)

func (p Policy) String() string {
	if p == PolicyKeep {
		return "KEEP"
	}
	return "REPLACE"
}

// Result is the outcome reported at the job boundary.
type Result int

const (
	ResultSuccess Result = iota
	ResultFailure
	// ResultSkipped means a constraint was not met and the job did not run.
	ResultSkipped
)

func (r Result) String() string {
	switch r {
	case ResultSuccess:
		return "success"
	case ResultFailure:
		return "failure"
	default:
		return "skipped"
	}
}

// Job is a unit of background work identified by a unique key.
type Job struct {
	Key     string
	Policy  Policy
	Trigger Trigger
	// RequiresBatteryNotLow skips the run while the device reports low battery.
	RequiresBatteryNotLow bool
	Run                   func(ctx context.Context) error
}

// Entry is a snapshot of a scheduled job.
type Entry struct {
	Key                   string
	Policy                Policy
	Trigger               Trigger
	RequiresBatteryNotLow bool
}

type registered struct {
	id    cron.EntryID
	seq   uint64
	entry Entry
}

// Registry maps job keys onto cron entries so each key has at most one active job.
type Registry struct {
	mu      sync.Mutex
	cron    *cron.Cron
	jobs    map[string]registered
	seq     uint64
	device  DeviceState
	timeout time.Duration
	logger  *zap.Logger
	onDone  func(key string, result Result)
}

// Option configures a Registry.
type Option func(*Registry)

func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) { r.logger = logging.OrNop(logger) }
}

func WithDeviceState(device DeviceState) Option {
	return func(r *Registry) {
		if device != nil {
			r.device = device
		}
	}
}

// WithJobTimeout bounds a single run. Zero disables the bound.
func WithJobTimeout(d time.Duration) Option {
	return func(r *Registry) { r.timeout = d }
}

// WithResultHook is called after every run with its outcome.
func WithResultHook(fn func(key string, result Result)) Option {
	return func(r *Registry) { r.onDone = fn }
}

// NewRegistry creates a stopped registry. Call Start to begin firing jobs.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		jobs:   make(map[string]registered),
		device: StaticDevice(false),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.Named("scheduler")

	cl := cronLogger{r.logger.Sugar()}
	r.cron = cron.New(
		cron.WithLocation(time.Local),
		cron.WithLogger(cl),
		cron.WithChain(cron.SkipIfStillRunning(cl)),
	)
	return r
}

func (r *Registry) Start() {
	r.cron.Start()
}

// Stop halts the scheduler and waits for running jobs to finish or ctx to expire.
func (r *Registry) Stop(ctx context.Context) error {
	done := r.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Schedule registers job under its key according to its policy.
// It reports false when a KEEP job was already present.
func (r *Registry) Schedule(job Job) (bool, error) {
	if job.Key == "" {
		return false, errors.NewInvalidInputError("key", job.Key, "job key is required")
	}
	if job.Run == nil {
		return false, errors.NewInvalidInputError("run", job.Key, "job has no function")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.jobs[job.Key]; ok {
		if job.Policy == PolicyKeep {
			r.logger.Debug("job already scheduled", logging.JobKey(job.Key))
			return false, nil
		}
		r.cron.Remove(existing.id)
		delete(r.jobs, job.Key)
	}

	r.seq++
	seq := r.seq
	id := r.cron.Schedule(job.Trigger.schedule(), cron.FuncJob(func() {
		r.execute(context.Background(), job)
		if job.Trigger.OneShot() {
			r.release(job.Key, seq)
		}
	}))

	r.jobs[job.Key] = registered{
		id:  id,
		seq: seq,
		entry: Entry{
			Key:                   job.Key,
			Policy:                job.Policy,
			Trigger:               job.Trigger,
			RequiresBatteryNotLow: job.RequiresBatteryNotLow,
		},
	}

	r.logger.Debug("job scheduled",
		logging.JobKey(job.Key),
		zap.Stringer("policy", job.Policy),
		zap.Time("first_run", job.Trigger.First),
		zap.Duration("every", job.Trigger.Every),
	)
	return true, nil
}

// Cancel removes the job under key. It reports whether one existed.
func (r *Registry) Cancel(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.jobs[key]
	if !ok {
		return false
	}
	r.cron.Remove(existing.id)
	delete(r.jobs, key)
	r.logger.Debug("job cancelled", logging.JobKey(key))
	return true
}

// CancelAll removes every scheduled job.
func (r *Registry) CancelAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, existing := range r.jobs {
		r.cron.Remove(existing.id)
		delete(r.jobs, key)
	}
	r.logger.Debug("all jobs cancelled")
}

func (r *Registry) Lookup(key string) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.jobs[key]
	return existing.entry, ok
}

// Keys returns the scheduled job keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(r.jobs))
	for key := range r.jobs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Execute runs job immediately on the calling goroutine, with the same constraints,
// timeout and logging as a scheduled run.
func (r *Registry) Execute(ctx context.Context, job Job) Result {
	return r.execute(ctx, job)
}

func (r *Registry) execute(ctx context.Context, job Job) (result Result) {
	log := r.logger.With(logging.JobKey(job.Key), zap.String("run_id", uuid.NewString()))
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("job panicked", zap.Any("panic", rec))
			result = ResultFailure
		}
		log.Info("job finished",
			zap.Stringer("result", result),
			zap.Duration("duration", time.Since(start)),
		)
		if r.onDone != nil {
			r.onDone(job.Key, result)
		}
	}()

	if job.RequiresBatteryNotLow && r.device.BatteryLow() {
		log.Info("job skipped", zap.String("reason", "battery low"))
		return ResultSkipped
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	if err := job.Run(ctx); err != nil {
		log.Warn("job failed", zap.Error(err))
		return ResultFailure
	}
	return ResultSuccess
}

// release drops a fired one-shot job unless it was replaced meanwhile.
func (r *Registry) release(key string, seq uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.jobs[key]; ok && existing.seq == seq {
		r.cron.Remove(existing.id)
		delete(r.jobs, key)
	}
}

// cronLogger adapts zap to cron's logger interface.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(fmt.Sprintf("%s: %v", msg, err), keysAndValues...)
}
