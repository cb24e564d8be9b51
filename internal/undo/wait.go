package undo

import (
	"context"
	"time"
)

// Wait blocks until p's deadline and then expires it. If ctx ends first the
// timer is stopped, the deletion stays pending and ctx.Err() is returned.
func (c *Coordinator) Wait(ctx context.Context, p Pending) (bool, error) {
	timer := time.NewTimer(max(time.Until(p.Deadline), 0))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-timer.C:
		return c.Expire(p.Token), nil
	}
}
