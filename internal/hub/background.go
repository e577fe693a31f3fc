package hub

import "time"

// AfterFunc implements session.Scheduler. The timer itself fires on a
// runtime goroutine, but fn is posted back to Run so it executes on the
// loop like every other controller call.
func (h *Hub) AfterFunc(d time.Duration, fn func()) func() {
	// cancelled is only touched on the loop goroutine: cancel is called by
	// the controller and the posted closure runs inside Run.
	cancelled := false
	t := time.AfterFunc(d, func() {
		select {
		case h.timers <- func() {
			if !cancelled {
				fn()
			}
		}:
		case <-h.done:
		}
	})
	return func() {
		cancelled = true
		t.Stop()
	}
}
