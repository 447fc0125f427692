package tasklist

import "sync"

// writer runs persistence operations one at a time, in submission order,
// off the caller's goroutine.
type writer struct {
	ops     chan func()
	pending sync.WaitGroup
	done    chan struct{}
	once    sync.Once
}

func newWriter(buffer int) *writer {
	w := &writer{
		ops:  make(chan func(), buffer),
		done: make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *writer) run() {
	defer close(w.done)
	for op := range w.ops {
		op()
		w.pending.Done()
	}
}

// submit queues op. It blocks only when the buffer is full.
func (w *writer) submit(op func()) {
	w.pending.Add(1)
	w.ops <- op
}

// flush waits until every submitted op has run
func (w *writer) flush() {
	w.pending.Wait()
}

// close drains the queue and stops the goroutine. submit must not be
// called afterwards.
func (w *writer) close() {
	w.once.Do(func() {
		close(w.ops)
		<-w.done
	})
}
