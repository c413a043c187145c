package session

import "time"

// schedule arms a one-shot timer that delivers m into the inbox at its
// deadline. The timer is created synchronously inside the loop so a fake
// clock observes the waiter before the arming action's reply is sent; only
// the wait happens on a goroutine. The scheduler never touches session
// state; a fire is just another serialized message.
func (s *Session) schedule(d time.Duration, m Msg) {
	t := s.clock.NewTimer(d)
	go func() {
		select {
		case <-t.Chan():
			select {
			case s.inbox <- m:
			case <-s.ctx.Done():
			}
		case <-s.ctx.Done():
			t.Stop()
		}
	}()
}
