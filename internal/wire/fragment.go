// Package wire defines the fragment header framing used between the
// transmission engine and a remote receiver.
//
// Each fragment carries the owning frame's sequence number, its index,
// and the total fragment count, so a stateless receiver can reassemble a
// complete frame or discard a partial one. The layout is fixed-size and
// big-endian:
//
//	offset  size  field
//	0       1     magic (0xFC)
//	1       1     version (1)
//	2       1     flags (reserved, zero)
//	3       1     reserved (zero)
//	4       8     frame sequence number
//	12      2     fragment index
//	14      2     fragment count
//	16      4     payload length
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// HeaderSize is the fixed size of a fragment header in bytes.
	HeaderSize = 20

	// Magic identifies a framecast fragment.
	Magic = 0xFC

	// Version is the current header layout version.
	Version = 1

	// MaxFragments is the most fragments a single frame can be split
	// into, bounded by the uint16 count field.
	MaxFragments = 1<<16 - 1
)

var (
	// ErrShortHeader is returned when fewer than HeaderSize bytes are available.
	ErrShortHeader = errors.New("framecast: short fragment header")

	// ErrBadMagic is returned when the magic byte does not match.
	ErrBadMagic = errors.New("framecast: bad fragment magic")

	// ErrBadVersion is returned for an unsupported header version.
	ErrBadVersion = errors.New("framecast: unsupported fragment version")
)

// Header describes one fragment of a frame.
type Header struct {
	Seq        uint64
	Index      uint16
	Count      uint16
	PayloadLen uint32
}

// AppendHeader appends the encoded header to dst and returns the
// extended slice.
func AppendHeader(dst []byte, h Header) []byte {
	dst = append(dst, Magic, Version, 0, 0)
	dst = binary.BigEndian.AppendUint64(dst, h.Seq)
	dst = binary.BigEndian.AppendUint16(dst, h.Index)
	dst = binary.BigEndian.AppendUint16(dst, h.Count)
	dst = binary.BigEndian.AppendUint32(dst, h.PayloadLen)
	return dst
}

// ParseHeader decodes a fragment header from the front of b.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, ErrShortHeader
	}
	if b[0] != Magic {
		return Header{}, ErrBadMagic
	}
	if b[1] != Version {
		return Header{}, fmt.Errorf("%w: %d", ErrBadVersion, b[1])
	}
	return Header{
		Seq:        binary.BigEndian.Uint64(b[4:12]),
		Index:      binary.BigEndian.Uint16(b[12:14]),
		Count:      binary.BigEndian.Uint16(b[14:16]),
		PayloadLen: binary.BigEndian.Uint32(b[16:20]),
	}, nil
}

// FragmentCount returns the number of fragments needed to carry
// payloadLen bytes in chunks of at most maxFragment. An empty payload
// still occupies one fragment so the receiver observes the frame.
func FragmentCount(payloadLen, maxFragment int) int {
	if payloadLen <= 0 {
		return 1
	}
	return (payloadLen + maxFragment - 1) / maxFragment
}
