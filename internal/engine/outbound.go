package engine

// OutboundSink plays the role of the spec's "weak reference to
// transport" held by a Player: a revocable handle to a client's
// outbound channel. Send is non-blocking and silently drops the
// message if the channel is full or the sink has been revoked -
// slow/gone clients never block the single-writer actor (§5).
type OutboundSink[T any] struct {
	ch     chan<- T
	active bool
}

// NewOutboundSink wraps a channel as an active sink.
func NewOutboundSink[T any](ch chan<- T) *OutboundSink[T] {
	return &OutboundSink[T]{ch: ch, active: true}
}

// Revoke marks the sink inactive; subsequent Send calls silently no-op.
// Called by the transport layer when a connection's writer goroutine exits.
func (s *OutboundSink[T]) Revoke() {
	if s == nil {
		return
	}
	s.active = false
}

// Send attempts to deliver msg without blocking. Returns false if the
// sink is revoked or the channel's buffer is full.
func (s *OutboundSink[T]) Send(msg T) bool {
	if s == nil || !s.active {
		return false
	}
	select {
	case s.ch <- msg:
		return true
	default:
		return false
	}
}
