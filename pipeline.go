package pill

import "sync"

// Pipeline buffers events produced before the session is ready and delivers
// them in FIFO order once it is. Producers call Enqueue from any goroutine;
// a single flush loop drains the queue, one awaited send at a time, so
// delivery order equals enqueue order.
type Pipeline struct {
	queue     *Queue
	transport *Transport
	session   *Session
	logger    LoggerAdapter

	mu       sync.Mutex
	flushing bool
}

// NewPipeline creates a Pipeline draining into transport.
func NewPipeline(transport *Transport, session *Session, logger LoggerAdapter) *Pipeline {
	return &Pipeline{
		queue:     NewQueue(),
		transport: transport,
		session:   session,
		logger:    logger,
	}
}

// Enqueue appends an event and attempts a flush. If a flush is already
// running the event is only appended; the running flush loop picks it up
// because the loop re-checks the queue each iteration.
func (p *Pipeline) Enqueue(eventType string, payload map[string]any) {
	p.queue.Enqueue(Event{Type: eventType, Payload: payload})
	metricEventsEnqueued.Inc()
	p.Flush()
}

// Flush drains the queue in FIFO order. No-op while the session is not
// ready or another flush is in progress. Sends are best-effort: a failed
// send drops that event and the loop continues.
func (p *Pipeline) Flush() {
	p.mu.Lock()
	if !p.session.Ready() || p.flushing {
		p.mu.Unlock()
		return
	}
	p.flushing = true
	p.mu.Unlock()

	p.logger.Debug("Flushing event queue")
	for {
		event, ok := p.queue.Dequeue()
		if !ok {
			// Release the latch only if nothing arrived since the last
			// dequeue; an enqueue that saw the latch up is drained here.
			p.mu.Lock()
			if p.queue.IsEmpty() {
				p.flushing = false
				p.mu.Unlock()
				return
			}
			p.mu.Unlock()
			continue
		}
		p.transport.Send(event.Type, event.Payload)
	}
}

// Len returns the number of events still waiting in the queue.
func (p *Pipeline) Len() int {
	return p.queue.Len()
}

// Discard drops all buffered events without sending them.
func (p *Pipeline) Discard() {
	p.queue.Clear()
}
