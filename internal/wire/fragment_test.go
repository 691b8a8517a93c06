package wire

import (
	"errors"
	"testing"
)

func TestHeader_RoundTrip(t *testing.T) {
	h := Header{Seq: 42, Index: 3, Count: 7, PayloadLen: 1400}

	buf := AppendHeader(nil, h)
	if len(buf) != HeaderSize {
		t.Fatalf("encoded length = %d, want %d", len(buf), HeaderSize)
	}

	got, err := ParseHeader(buf)
	if err != nil {
		t.Fatalf("ParseHeader() error = %v", err)
	}
	if got != h {
		t.Errorf("ParseHeader() = %+v, want %+v", got, h)
	}
}

func TestParseHeader_Errors(t *testing.T) {
	valid := AppendHeader(nil, Header{Seq: 1, Count: 1})

	tests := []struct {
		name    string
		mutate  func([]byte) []byte
		wantErr error
	}{
		{"short", func(b []byte) []byte { return b[:HeaderSize-1] }, ErrShortHeader},
		{"bad magic", func(b []byte) []byte { b[0] = 0x00; return b }, ErrBadMagic},
		{"bad version", func(b []byte) []byte { b[1] = 99; return b }, ErrBadVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := append([]byte(nil), valid...)
			_, err := ParseHeader(tt.mutate(b))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseHeader() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFragmentCount(t *testing.T) {
	tests := []struct {
		payload, maxFragment, want int
	}{
		{0, 1200, 1},
		{1, 1200, 1},
		{1200, 1200, 1},
		{1201, 1200, 2},
		{3600, 1200, 3},
		{3601, 1200, 4},
	}

	for _, tt := range tests {
		if got := FragmentCount(tt.payload, tt.maxFragment); got != tt.want {
			t.Errorf("FragmentCount(%d, %d) = %d, want %d", tt.payload, tt.maxFragment, got, tt.want)
		}
	}
}
