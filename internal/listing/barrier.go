package listing

// Barrier waits for a fixed number of completion signals and reports once
// whether all of them succeeded. Any failure makes the whole batch fail.
type Barrier struct {
	pending   int
	succeeded int
	failed    bool
	settled   bool
	onSettle  func(ok bool)
}

// NewBarrier expects n signals. With n == 0 it settles immediately as a
// success.
func NewBarrier(n int, onSettle func(ok bool)) *Barrier {
	b := &Barrier{pending: n, onSettle: onSettle}
	if n <= 0 {
		b.pending = 0
		b.finish()
	}
	return b
}

// Done records one signal. Signals past the expected count are ignored.
func (b *Barrier) Done(ok bool) {
	if b.settled || b.pending == 0 {
		return
	}
	b.pending--
	if ok {
		b.succeeded++
	} else {
		b.failed = true
	}
	if b.pending == 0 {
		b.finish()
	}
}

// Pending returns the number of signals still outstanding.
func (b *Barrier) Pending() int { return b.pending }

// Succeeded returns the number of successful signals so far.
func (b *Barrier) Succeeded() int { return b.succeeded }

// Failed reports whether any signal failed.
func (b *Barrier) Failed() bool { return b.failed }

// Settled reports whether every signal has arrived.
func (b *Barrier) Settled() bool { return b.settled }

func (b *Barrier) finish() {
	b.settled = true
	if b.onSettle != nil {
		b.onSettle(!b.failed)
	}
}
