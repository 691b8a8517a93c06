package framecast_test

import (
	"context"
	"fmt"

	"github.com/vtx-labs/framecast/pkg/framecast"
)

// ExampleNew demonstrates how to embed a framecast sender in your application.
func ExampleNew() {
	// The transport is whatever non-blocking send primitive your link
	// offers; here it accepts everything.
	transport := framecast.TransportFunc(func(b []byte) (framecast.SendResult, error) {
		return framecast.SendAccepted, nil
	})

	sender, err := framecast.New(transport, framecast.DefaultConfig())
	if err != nil {
		fmt.Printf("failed to create sender: %v\n", err)
		return
	}

	done := make(chan struct{})
	sender.SetListener(framecast.StatusListenerFunc(func(cause framecast.Status, f *framecast.Frame) {
		fmt.Printf("frame %d: %s\n", f.Seq, cause)
		close(done)
	}))

	if err := sender.Start(context.Background()); err != nil {
		fmt.Printf("failed to start: %v\n", err)
		return
	}

	if _, err := sender.Submit([]byte("encoded video frame")); err != nil {
		fmt.Printf("submit rejected: %v\n", err)
		return
	}

	<-done
	_ = sender.Close()

	// Output: frame 1: Sent
}

// ExampleSender_AcquireBuffer demonstrates the zero-copy producer path.
func ExampleSender_AcquireBuffer() {
	transport := framecast.TransportFunc(func(b []byte) (framecast.SendResult, error) {
		return framecast.SendAccepted, nil
	})

	sender, _ := framecast.New(transport, framecast.DefaultConfig())
	_ = sender.Start(context.Background())
	defer sender.Close()

	// The encoder writes directly into pooled memory; no copy on submit.
	buf, err := sender.AcquireBuffer()
	if err != nil {
		fmt.Printf("no free buffer: %v\n", err)
		return
	}
	n := copy(buf.Bytes(), "encoded in place")
	buf.SetLen(n)

	seq, err := sender.SubmitBuffer(buf)
	if err != nil {
		sender.ReleaseBuffer(buf)
		fmt.Printf("submit rejected: %v\n", err)
		return
	}
	fmt.Printf("submitted frame %d\n", seq)

	// Output: submitted frame 1
}
