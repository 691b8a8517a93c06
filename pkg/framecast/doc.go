// Package framecast implements an asynchronous, buffer-pooled video
// frame sender for constrained lossy links.
//
// A Sender owns a fixed arena of native buffers, multiplexes frame
// submissions against transport send capacity, and reports each frame's
// terminal status (Sent or Cancelled) to an application listener. The
// design favors freshness over completeness: under backpressure the
// oldest queued frame is evicted in favor of the newest submission, and
// lost frames are never retransmitted.
//
// # Usage
//
//	sender, err := framecast.New(transport, framecast.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	sender.SetListener(framecast.StatusListenerFunc(func(cause framecast.Status, f *framecast.Frame) {
//	    // exactly one terminal status per submitted frame
//	}))
//	if err := sender.Start(ctx); err != nil {
//	    return err
//	}
//	seq, err := sender.Submit(encodedFrame)
//	...
//	_ = sender.Close()
//
// The listener runs on a dedicated notification goroutine; a slow
// listener never stalls admission or transmission. The buffer handle
// passed to the listener is informational only and must not be read
// after the callback returns.
package framecast
