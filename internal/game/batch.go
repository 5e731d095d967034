package game

// An Update mutates the in-progress frame state. An update staged later
// in a batch observes the cumulative effect of every update staged
// before it, so two speed changes in one frame compose instead of
// clobbering each other.
type Update func(*GameState)

type stagedUpdate struct {
	apply Update
	done  func()
}

// Batcher coalesces state updates from every mutation source (frame
// ticks, position reports, input, growth and respawn timers, collision
// outcomes) into exactly one atomic commit per frame. Between two
// flushes the committed state never changes.
//
// Batcher is not goroutine-safe; the owning Session serializes access.
type Batcher struct {
	committed GameState
	pending   []stagedUpdate
}

// NewBatcher creates a Batcher committed at the given initial state.
func NewBatcher(initial GameState) *Batcher {
	return &Batcher{committed: initial}
}

// Batch stages an update for the next flush.
func (b *Batcher) Batch(fn Update) {
	b.pending = append(b.pending, stagedUpdate{apply: fn})
}

// BatchDone stages an update with a completion callback. The callback
// runs after the update has been committed by Flush, in the order the
// update was staged.
func (b *Batcher) BatchDone(fn Update, done func()) {
	b.pending = append(b.pending, stagedUpdate{apply: fn, done: done})
}

// View returns the state as it will stand after the next flush: the
// committed state with all pending updates folded over it in staging
// order. Collision and consumption checks read this so they never work
// from stale pre-frame transforms.
func (b *Batcher) View() GameState {
	s := b.committed
	for _, u := range b.pending {
		u.apply(&s)
	}
	return s
}

// Flush folds the pending updates over the committed state left to
// right, commits the result in a single assignment, then runs completion
// callbacks in staging order. The batch is empty afterwards. Callbacks
// may stage new updates; those land in the next frame's batch.
func (b *Batcher) Flush() {
	next := b.committed
	staged := b.pending
	for _, u := range staged {
		u.apply(&next)
	}
	b.pending = nil
	b.committed = next

	for _, u := range staged {
		if u.done != nil {
			u.done()
		}
	}
}

// Clear discards pending updates and their callbacks without committing.
// Used on reset so stale in-flight updates cannot leak into a new run.
func (b *Batcher) Clear() {
	b.pending = nil
}

// Committed returns the last-committed state. This is the only state
// renderers are ever given.
func (b *Batcher) Committed() GameState {
	return b.committed
}
