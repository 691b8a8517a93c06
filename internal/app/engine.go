package app

import (
	"time"

	"github.com/vtx-labs/framecast/internal/domain"
	"github.com/vtx-labs/framecast/internal/pool"
	"github.com/vtx-labs/framecast/internal/ports"
	"github.com/vtx-labs/framecast/internal/queue"
	"github.com/vtx-labs/framecast/internal/wire"
)

// EngineConfig contains the transmission parameters.
type EngineConfig struct {
	// MaxFragment is the most payload bytes carried per fragment,
	// excluding the wire header.
	MaxFragment int

	// BusyBackoffInitial and BusyBackoffMax bound the retry wait when
	// the transport reports Busy.
	BusyBackoffInitial time.Duration
	BusyBackoffMax     time.Duration
}

// Engine is the single transmission worker. It drains ready frames from
// the queue, fragments their payloads, and drives them through the
// transport. The engine is the sole writer of the Queued -> Sending
// transition and, together with eviction and shutdown, races for the
// terminal transition through Frame.Finish.
type Engine struct {
	cfg       EngineConfig
	transport ports.Transport
	pool      *pool.Pool
	queue     *queue.Queue
	notifier  *Notifier
	stats     *domain.Stats
	logger    ports.Logger

	stop    chan struct{}
	done    chan struct{}
	scratch []byte // reusable fragment encode buffer, header + payload
}

// NewEngine wires a transmission engine. It does not start the worker;
// call Start.
func NewEngine(
	cfg EngineConfig,
	transport ports.Transport,
	bufPool *pool.Pool,
	q *queue.Queue,
	notifier *Notifier,
	stats *domain.Stats,
	logger ports.Logger,
) *Engine {
	if cfg.BusyBackoffInitial <= 0 {
		cfg.BusyBackoffInitial = DefaultBusyBackoffInitial
	}
	if cfg.BusyBackoffMax <= 0 {
		cfg.BusyBackoffMax = DefaultBusyBackoffMax
	}
	return &Engine{
		cfg:       cfg,
		transport: transport,
		pool:      bufPool,
		queue:     q,
		notifier:  notifier,
		stats:     stats,
		logger:    logger,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
		scratch:   make([]byte, 0, wire.HeaderSize+cfg.MaxFragment),
	}
}

// Start spawns the worker goroutine.
func (e *Engine) Start() {
	go e.run()
}

// Stop signals the worker and waits for it to exit. The frame being
// sent, if any, is allowed to finish; it is cancelled only if the
// transport keeps it waiting in a Busy retry. Queued frames are the
// caller's responsibility (the facade cancels them before Stop).
func (e *Engine) Stop() {
	select {
	case <-e.stop:
	default:
		close(e.stop)
	}
	<-e.done
}

// Finish drives frame into its terminal state, reclaims its buffer, and
// posts the status event. Exactly one caller wins the terminal
// transition; losers return without side effects. Safe to call from the
// engine worker and from the facade (eviction, shutdown).
func (e *Engine) Finish(f *domain.Frame, cause domain.Status) {
	if !f.Finish(cause) {
		return
	}

	// Reclaim-then-notify: the pool may reissue this buffer before the
	// listener runs. The listener contract makes the handle
	// informational only.
	e.pool.Release(f.Buf)

	switch cause {
	case domain.StatusSent:
		e.stats.Sent.Add(1)
	case domain.StatusCancelled:
		e.stats.Cancelled.Add(1)
	}

	e.notifier.Post(cause, f)
}

func (e *Engine) run() {
	defer close(e.done)

	for {
		select {
		case <-e.stop:
			return
		case <-e.queue.Ready():
			for {
				f := e.queue.DequeueForSend()
				if f == nil {
					break
				}
				e.transmit(f)

				select {
				case <-e.stop:
					return
				default:
				}
			}
		}
	}
}

// transmit drives one frame through the transport, fragment by fragment.
func (e *Engine) transmit(f *domain.Frame) {
	payload := f.Buf.Payload()
	count := wire.FragmentCount(len(payload), e.cfg.MaxFragment)
	if count > wire.MaxFragments {
		// Config validation caps frame size below this; a frame that
		// still overflows the count field cannot be represented on the
		// wire.
		e.logger.Error("frame exceeds max fragment count",
			ports.Uint64("seq", f.Seq),
			ports.Int("fragments", count),
		)
		e.Finish(f, domain.StatusCancelled)
		return
	}

	bo := newBackoff(e.cfg.BusyBackoffInitial, e.cfg.BusyBackoffMax)

	for i := 0; i < count; i++ {
		// Cooperative cancellation at fragment boundaries.
		if f.Superseded() {
			e.Finish(f, domain.StatusCancelled)
			return
		}

		start := i * e.cfg.MaxFragment
		end := start + e.cfg.MaxFragment
		if end > len(payload) {
			end = len(payload)
		}
		chunk := payload[start:end]

		e.scratch = wire.AppendHeader(e.scratch[:0], wire.Header{
			Seq:        f.Seq,
			Index:      uint16(i),
			Count:      uint16(count),
			PayloadLen: uint32(len(chunk)),
		})
		e.scratch = append(e.scratch, chunk...)

		if !e.sendFragment(f, bo) {
			// sendFragment already finished the frame.
			return
		}
		bo.Reset()
	}

	e.Finish(f, domain.StatusSent)
}

// sendFragment pushes the scratch buffer through the transport, retrying
// on Busy. Returns false if the frame was finished (fatal transport
// error, supersession, or shutdown during a Busy wait).
func (e *Engine) sendFragment(f *domain.Frame, bo *backoff) bool {
	for {
		result, err := e.transport.TrySend(e.scratch)
		switch result {
		case ports.SendAccepted:
			e.stats.FragmentsSent.Add(1)
			e.stats.BytesSent.Add(uint64(len(e.scratch)))
			return true

		case ports.SendBusy:
			if f.Superseded() {
				e.Finish(f, domain.StatusCancelled)
				return false
			}
			if !bo.Wait(e.stop) {
				// Shutdown while the transport has us parked.
				e.Finish(f, domain.StatusCancelled)
				return false
			}

		case ports.SendFatal:
			e.stats.TransportErrors.Add(1)
			e.logger.Warn("transport rejected fragment",
				ports.Uint64("seq", f.Seq),
				ports.Err(err),
			)
			e.Finish(f, domain.StatusCancelled)
			return false

		default:
			e.stats.TransportErrors.Add(1)
			e.logger.Error("transport returned unknown result",
				ports.Uint64("seq", f.Seq),
				ports.Int("result", int(result)),
			)
			e.Finish(f, domain.StatusCancelled)
			return false
		}
	}
}
