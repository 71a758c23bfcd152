// Package broker implements the event channel: an unbounded, append-only
// broadcast medium with one independent read cursor per subscriber.
//
// Design decisions:
//   - Duplication on publish: every receiver owns a private FIFO, so consuming
//     from one receiver never affects what another observes
//   - No retained backlog: a receiver sees only what is published after it
//     subscribed
//   - Never blocks, never drops: publishing appends to every live receiver's
//     queue and returns immediately
//   - No back-pressure: an idle receiver grows without bound; Receiver.Len
//     exposes the backlog
//   - Single writer: closing the channel marks the writer gone; receivers
//     drain what they have and then report ErrDisconnected forever
//
// Example usage:
//
//	ch := broker.New[events.Event]()
//	rx := ch.Subscribe()
//
//	if err := ch.Publish(ev); err != nil {
//	    // the channel was closed
//	}
//
//	switch v, err := rx.TryRecv(); {
//	case err == nil:
//	    // got v
//	case errors.Is(err, broker.ErrEmpty):
//	    // nothing yet, try again on the next tick
//	case errors.Is(err, broker.ErrDisconnected):
//	    // the writer is gone and the backlog is drained
//	}
package broker
