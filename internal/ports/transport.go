package ports

// SendResult classifies the outcome of a single TrySend call.
type SendResult int

const (
	// SendAccepted means the transport queued the bytes for egress.
	// It does not imply receiver acknowledgement.
	SendAccepted SendResult = iota

	// SendBusy means the transport cannot take the bytes right now.
	// Busy is retryable; the engine backs off and retries the same
	// fragment within the frame.
	SendBusy

	// SendFatal means the transport permanently rejected the bytes.
	// The owning frame is cancelled; the sender itself stays usable.
	SendFatal
)

// String returns a human-readable representation of the result.
func (r SendResult) String() string {
	switch r {
	case SendAccepted:
		return "Accepted"
	case SendBusy:
		return "Busy"
	case SendFatal:
		return "Fatal"
	default:
		return "Unknown"
	}
}

// Transport is the non-blocking send primitive the sender depends on but
// does not implement. Implementations must not block the caller
// indefinitely; backpressure is reported as SendBusy.
//
// The returned error carries diagnostics for SendBusy and SendFatal and
// is nil for SendAccepted.
type Transport interface {
	TrySend(b []byte) (SendResult, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(b []byte) (SendResult, error)

// TrySend calls f(b).
func (f TransportFunc) TrySend(b []byte) (SendResult, error) {
	return f(b)
}
