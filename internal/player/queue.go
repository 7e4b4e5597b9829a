package player

import "sync"

// eventQueue delivers events in order without ever blocking the producer.
// Consecutive time updates collapse into the latest one.
type eventQueue struct {
	mu      sync.Mutex
	pending []Event
	wake    chan struct{}
	done    chan struct{}
	out     chan Event
	once    sync.Once
}

func newEventQueue() *eventQueue {
	q := &eventQueue{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
		out:  make(chan Event, 16),
	}
	go q.run()
	return q
}

func (q *eventQueue) push(e Event) {
	q.mu.Lock()
	if n := len(q.pending); n > 0 && e.Type == EventTimeUpdate && q.pending[n-1].Type == EventTimeUpdate {
		q.pending[n-1] = e
	} else {
		q.pending = append(q.pending, e)
	}
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *eventQueue) run() {
	defer close(q.out)
	for {
		q.mu.Lock()
		batch := q.pending
		q.pending = nil
		q.mu.Unlock()

		for _, e := range batch {
			select {
			case q.out <- e:
			case <-q.done:
				return
			}
		}
		if len(batch) > 0 {
			continue
		}

		select {
		case <-q.wake:
		case <-q.done:
			return
		}
	}
}

func (q *eventQueue) close() {
	q.once.Do(func() { close(q.done) })
}
