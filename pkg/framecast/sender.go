package framecast

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/vtx-labs/framecast/internal/app"
	"github.com/vtx-labs/framecast/internal/domain"
	"github.com/vtx-labs/framecast/internal/pool"
	"github.com/vtx-labs/framecast/internal/ports"
	"github.com/vtx-labs/framecast/internal/queue"
)

// Sender is an asynchronous video frame sender. Use New() to create an
// instance, then Start() to begin transmission.
//
// Two roles run concurrently: the producer calling Submit and the
// transmission engine draining the queue. The pool and queue are the
// only shared mutable state; every submitted frame receives exactly one
// terminal notification, including across Close().
type Sender struct {
	cfg       Config
	id        string
	transport ports.Transport
	logger    ports.Logger

	lifecycle *app.Lifecycle
	pool      *pool.Pool
	queue     *queue.Queue
	notifier  *app.Notifier
	engine    *app.Engine
	stats     *domain.Stats

	// mu serializes producers: sequence assignment, buffer acquisition
	// (with eviction fallback) and enqueue are one atomic admission
	// step. No network I/O or listener callback runs under mu.
	mu  sync.Mutex
	seq uint64

	closedCh  chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// New creates a Sender that transmits through the given transport.
// The instance is created in StateIdle; call Start() to begin.
func New(transport Transport, cfg Config, opts ...Option) (*Sender, error) {
	if transport == nil {
		return nil, fmt.Errorf("%w: transport is required", domain.ErrInvalidConfig)
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &Sender{
		cfg:       cfg,
		id:        uuid.NewString(),
		transport: transport,
		logger:    o.logger,
		pool:      pool.New(cfg.PoolCapacity, cfg.BufferSize),
		queue:     queue.New(),
		notifier:  app.NewNotifier(cfg.NotifyBuffer, o.logger),
		stats:     &domain.Stats{},
		closedCh:  make(chan struct{}),
	}
	s.lifecycle = app.NewLifecycle(o.logger, o.stateHandler)
	s.engine = app.NewEngine(
		app.EngineConfig{
			MaxFragment:        cfg.MaxFragment,
			BusyBackoffInitial: cfg.BusyBackoffInitial,
			BusyBackoffMax:     cfg.BusyBackoffMax,
		},
		transport, s.pool, s.queue, s.notifier, s.stats, o.logger,
	)

	if o.listener != nil {
		s.notifier.SetListener(o.listener)
	}

	return s, nil
}

// ID returns the unique session identifier of this sender instance.
func (s *Sender) ID() string {
	return s.id
}

// Start begins transmission. The notification and engine workers are
// spawned; Submit becomes available. If ctx is cancellable, its
// cancellation closes the sender.
func (s *Sender) Start(ctx context.Context) error {
	if err := s.lifecycle.TransitionTo(app.StateRunning, "Start() called"); err != nil {
		return err
	}

	s.notifier.Start()
	s.engine.Start()

	if ctx != nil && ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				_ = s.Close()
			case <-s.closedCh:
			}
		}()
	}

	s.logger.Info("sender started",
		ports.String("session", s.id),
		ports.Int("pool_capacity", s.cfg.PoolCapacity),
		ports.Int("buffer_size", s.cfg.BufferSize),
		ports.Int("max_fragment", s.cfg.MaxFragment),
	)
	return nil
}

// Submit copies payload into a pooled buffer and queues it for
// transmission, returning the assigned sequence number. Under pool
// exhaustion the oldest still-queued frame is evicted to fund the new
// one (freshest frame wins); if nothing is evictable the submission is
// rejected with ErrPoolExhausted.
//
// The terminal outcome is reported asynchronously through the listener;
// there is no synchronous success channel by design.
func (s *Sender) Submit(payload []byte) (uint64, error) {
	if len(payload) > s.cfg.BufferSize {
		return 0, domain.ErrFrameTooLarge
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.acceptingLocked(); err != nil {
		return 0, err
	}

	buf, err := s.acquireLocked()
	if err != nil {
		return 0, err
	}

	copy(buf.Bytes(), payload)
	buf.SetLen(len(payload))

	return s.enqueueLocked(buf), nil
}

// AcquireBuffer checks out a buffer for the producer to fill, enabling
// zero-copy submission via SubmitBuffer. The producer owns the buffer
// until it calls SubmitBuffer or ReleaseBuffer. Like Submit, exhaustion
// evicts the oldest queued frame before rejecting.
func (s *Sender) AcquireBuffer() (*Buffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.acceptingLocked(); err != nil {
		return nil, err
	}
	return s.acquireLocked()
}

// SubmitBuffer queues a producer-filled buffer for transmission. The
// buffer must have been obtained from AcquireBuffer on this sender and
// its logical length set; submitting a foreign buffer panics. On error
// the producer keeps ownership and should call ReleaseBuffer.
func (s *Sender) SubmitBuffer(buf *Buffer) (uint64, error) {
	if !s.pool.Owns(buf) {
		panic("framecast: submit of buffer not acquired from this sender")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.acceptingLocked(); err != nil {
		return 0, err
	}
	return s.enqueueLocked(buf), nil
}

// ReleaseBuffer returns an acquired-but-unsubmitted buffer to the pool.
func (s *Sender) ReleaseBuffer(buf *Buffer) {
	s.pool.Release(buf)
}

// SetListener registers or replaces the status listener. Frames reaching
// a terminal state while no listener is set are counted but their
// notifications are discarded.
func (s *Sender) SetListener(listener StatusListener) {
	s.notifier.SetListener(listener)
}

// Stats returns a snapshot of the sender counters.
func (s *Sender) Stats() Stats {
	return s.stats.Snapshot()
}

// State returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (s *Sender) State() State {
	return s.lifecycle.State()
}

// Close performs a scoped shutdown: new submissions are rejected, every
// queued frame is cancelled immediately, the frame being sent (at most
// one) finishes or is cancelled by transport outcome, and all terminal
// notifications are delivered before Close returns. Idempotent.
func (s *Sender) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.doClose()
	})
	return s.closeErr
}

func (s *Sender) doClose() error {
	if s.lifecycle.State() == app.StateIdle {
		_ = s.lifecycle.TransitionTo(app.StateClosed, "closed before start")
		close(s.closedCh)
		return nil
	}

	if err := s.lifecycle.TransitionTo(app.StateClosing, "Close() called"); err != nil {
		return err
	}
	close(s.closedCh)

	// Taking mu here fences any submission that passed the accepting
	// check before the transition: its frame is enqueued by the time we
	// drain, so it is cancelled, not lost.
	s.mu.Lock()
	drained := s.queue.DrainAll()
	s.mu.Unlock()

	for _, f := range drained {
		s.engine.Finish(f, domain.StatusCancelled)
	}

	// Waits for the in-flight frame; a frame parked on a Busy transport
	// is cancelled rather than awaited forever.
	s.engine.Stop()

	// Every Finish has been posted; drain them to the listener.
	s.notifier.Close()

	_ = s.lifecycle.TransitionTo(app.StateClosed, "shutdown complete")

	snap := s.stats.Snapshot()
	s.logger.Info("sender closed",
		ports.String("session", s.id),
		ports.Uint64("submitted", snap.Submitted),
		ports.Uint64("sent", snap.Sent),
		ports.Uint64("cancelled", snap.Cancelled),
		ports.Uint64("transport_errors", snap.TransportErrors),
	)
	return nil
}

// acceptingLocked maps the lifecycle state to a submission error.
func (s *Sender) acceptingLocked() error {
	switch s.lifecycle.State() {
	case app.StateRunning:
		return nil
	case app.StateIdle:
		return domain.ErrNotRunning
	default:
		return domain.ErrClosed
	}
}

// acquireLocked checks out a buffer, evicting the oldest queued frame
// under exhaustion. Caller holds mu.
func (s *Sender) acquireLocked() (*domain.Buffer, error) {
	buf, err := s.pool.Acquire()
	if err == nil {
		return buf, nil
	}

	evicted := s.queue.EvictOldestQueued()
	if evicted == nil {
		s.stats.PoolRejections.Add(1)
		return nil, domain.ErrPoolExhausted
	}

	s.stats.Evicted.Add(1)
	s.logger.Debug("evicted stale frame",
		ports.String("session", s.id),
		ports.Uint64("seq", evicted.Seq),
	)
	// Finish releases the evicted frame's buffer before notifying, so
	// the retry below is funded.
	s.engine.Finish(evicted, domain.StatusCancelled)

	buf, err = s.pool.Acquire()
	if err != nil {
		s.stats.PoolRejections.Add(1)
		return nil, err
	}
	return buf, nil
}

// enqueueLocked assigns the next sequence number and queues the frame.
// Caller holds mu.
func (s *Sender) enqueueLocked(buf *domain.Buffer) uint64 {
	s.seq++
	f := domain.NewFrame(s.seq, buf)
	s.queue.Submit(f)
	s.stats.Submitted.Add(1)
	return s.seq
}
