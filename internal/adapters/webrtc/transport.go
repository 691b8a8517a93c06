// Package webrtc implements ports.Transport over a WebRTC DataChannel.
//
// The adapter expects an already-negotiated channel; signaling is the
// application's concern. DataChannel sends are buffered by the SCTP
// stack, so backpressure is surfaced through BufferedAmount rather than
// a blocking write: above the configured threshold the adapter reports
// SendBusy and the engine backs off.
package webrtc

import (
	"errors"
	"fmt"

	"github.com/pion/webrtc/v4"

	"github.com/vtx-labs/framecast/internal/ports"
)

// DefaultMaxBuffered is the default BufferedAmount threshold above
// which sends report Busy.
const DefaultMaxBuffered = 1 << 20 // 1 MiB

var errChannelNotOpen = errors.New("data channel not open")

// Transport sends fragments as DataChannel messages.
type Transport struct {
	dc          *webrtc.DataChannel
	maxBuffered uint64
	logger      ports.Logger
}

// NewTransport wraps a negotiated DataChannel. maxBuffered == 0 selects
// DefaultMaxBuffered.
func NewTransport(dc *webrtc.DataChannel, maxBuffered uint64, logger ports.Logger) *Transport {
	if maxBuffered == 0 {
		maxBuffered = DefaultMaxBuffered
	}
	return &Transport{
		dc:          dc,
		maxBuffered: maxBuffered,
		logger:      logger,
	}
}

// TrySend queues one message on the data channel. A closed or closing
// channel is SendFatal; a full send buffer is SendBusy.
func (t *Transport) TrySend(b []byte) (ports.SendResult, error) {
	if t.dc.ReadyState() != webrtc.DataChannelStateOpen {
		return ports.SendFatal, fmt.Errorf("%w: state %s", errChannelNotOpen, t.dc.ReadyState())
	}

	if t.dc.BufferedAmount() > t.maxBuffered {
		return ports.SendBusy, fmt.Errorf("buffered amount %d above threshold %d", t.dc.BufferedAmount(), t.maxBuffered)
	}

	if err := t.dc.Send(b); err != nil {
		return ports.SendFatal, fmt.Errorf("data channel send: %w", err)
	}
	return ports.SendAccepted, nil
}

// Close closes the underlying data channel.
func (t *Transport) Close() error {
	return t.dc.Close()
}
