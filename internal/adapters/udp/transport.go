// Package udp implements ports.Transport over a connected UDP socket.
//
// Each fragment becomes one datagram. A short write deadline converts
// kernel backpressure into SendBusy instead of blocking the engine.
package udp

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/vtx-labs/framecast/internal/ports"
)

// DefaultWriteTimeout bounds a single datagram write.
const DefaultWriteTimeout = 5 * time.Millisecond

// MaxDatagram is the largest datagram the adapter will attempt to send.
// Fragments above this are a configuration error and reported Fatal.
const MaxDatagram = 65507

// Transport sends fragments as UDP datagrams over a connected socket.
type Transport struct {
	conn         *net.UDPConn
	writeTimeout time.Duration
	logger       ports.Logger
}

// NewTransport wraps a connected UDP socket. writeTimeout <= 0 selects
// DefaultWriteTimeout.
func NewTransport(conn *net.UDPConn, writeTimeout time.Duration, logger ports.Logger) *Transport {
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}
	return &Transport{
		conn:         conn,
		writeTimeout: writeTimeout,
		logger:       logger,
	}
}

// Dial resolves addr and returns a transport over a connected socket.
func Dial(addr string, writeTimeout time.Duration, logger ports.Logger) (*Transport, error) {
	remote, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", addr, err)
	}
	conn, err := net.DialUDP("udp", nil, remote)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return NewTransport(conn, writeTimeout, logger), nil
}

// TrySend writes one datagram. A deadline timeout maps to SendBusy;
// any other write error is SendFatal for the owning frame.
func (t *Transport) TrySend(b []byte) (ports.SendResult, error) {
	if len(b) > MaxDatagram {
		return ports.SendFatal, fmt.Errorf("fragment of %d bytes exceeds max datagram %d", len(b), MaxDatagram)
	}

	if err := t.conn.SetWriteDeadline(time.Now().Add(t.writeTimeout)); err != nil {
		return ports.SendFatal, fmt.Errorf("set write deadline: %w", err)
	}

	_, err := t.conn.Write(b)
	if err == nil {
		return ports.SendAccepted, nil
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return ports.SendBusy, err
	}

	return ports.SendFatal, err
}

// Close closes the underlying socket.
func (t *Transport) Close() error {
	return t.conn.Close()
}

// LocalAddr returns the local socket address.
func (t *Transport) LocalAddr() net.Addr {
	return t.conn.LocalAddr()
}
