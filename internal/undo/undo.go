// Package undo holds a single soft-deleted task open for a grace period.
//
// The coordinator owns no timers. Delete hands back a Pending carrying a
// token and deadline; whoever drives the event loop arranges for Expire(token)
// to run at the deadline. A token that no longer matches the pending deletion
// is ignored, which is how an undo cancels an in-flight timer.
package undo

import (
	"time"

	"taskflow/internal/task"
)

// DefaultTimeout is how long a deletion stays undoable.
const DefaultTimeout = 3000 * time.Millisecond

// Store is the part of task.Store the coordinator drives.
type Store interface {
	SoftDelete(id string) (task.Handle, error)
	CommitDelete(id string) bool
	Restore(h task.Handle) bool
}

// State is Idle or PendingUndo.
type State int

const (
	Idle State = iota
	PendingUndo
)

func (s State) String() string {
	if s == PendingUndo {
		return "pending"
	}
	return "idle"
}

// Pending describes the deletion currently inside its undo window.
type Pending struct {
	Handle   task.Handle
	Deadline time.Time
	Token    uint64
}

// Coordinator enforces a single undo slot over a Store.
type Coordinator struct {
	store   Store
	timeout time.Duration
	now     func() time.Time

	pending *Pending
	seq     uint64
}

// New returns an idle coordinator. A non-positive timeout uses DefaultTimeout.
func New(store Store, timeout time.Duration) *Coordinator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Coordinator{store: store, timeout: timeout, now: time.Now}
}

// SetClock overrides time.Now for deadlines.
func (c *Coordinator) SetClock(now func() time.Time) {
	c.now = now
}

// Timeout returns the undo window length.
func (c *Coordinator) Timeout() time.Duration {
	return c.timeout
}

// State reports whether a deletion is pending.
func (c *Coordinator) State() State {
	if c.pending == nil {
		return Idle
	}
	return PendingUndo
}

// Pending returns the deletion inside its undo window, if any.
func (c *Coordinator) Pending() (Pending, bool) {
	if c.pending == nil {
		return Pending{}, false
	}
	return *c.pending, true
}

// Delete soft-deletes id and opens its undo window. A deletion already pending
// is committed first. If id is unknown the previous deletion is still
// committed and the error is returned.
func (c *Coordinator) Delete(id string) (Pending, error) {
	c.commitPending()

	h, err := c.store.SoftDelete(id)
	if err != nil {
		return Pending{}, err
	}
	c.seq++
	c.pending = &Pending{
		Handle:   h,
		Deadline: c.now().Add(c.timeout),
		Token:    c.seq,
	}
	return *c.pending, nil
}

// Undo restores the pending task.
func (c *Coordinator) Undo() bool {
	if c.pending == nil {
		return false
	}
	h := c.pending.Handle
	c.pending = nil
	return c.store.Restore(h)
}

// Dismiss commits the pending deletion right away.
func (c *Coordinator) Dismiss() bool {
	return c.commitPending()
}

// Expire commits the pending deletion if token still identifies it. Stale
// tokens from cancelled or superseded windows are no-ops.
func (c *Coordinator) Expire(token uint64) bool {
	if c.pending == nil || c.pending.Token != token {
		return false
	}
	return c.commitPending()
}

func (c *Coordinator) commitPending() bool {
	if c.pending == nil {
		return false
	}
	id := c.pending.Handle.Task.ID
	c.pending = nil
	return c.store.CommitDelete(id)
}
