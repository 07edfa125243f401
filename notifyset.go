package channels

// notifySet is the unordered wake-one callback set backing readableWaits
// and writableWaits. Unlike blockedSends/blockedReceives, these two sets
// have no FIFO ordering requirement — waking one entry, chosen arbitrarily,
// is enough — so a map keyed by a monotonic token gets O(1) insert/remove
// without the intrusive-list bookkeeping waiterList needs.
type notifySet struct {
	next  uint64
	funcs map[uint64]func()
}

// add registers fn and returns a token that remove accepts.
func (s *notifySet) add(fn func()) uint64 {
	if s.funcs == nil {
		s.funcs = make(map[uint64]func())
	}
	s.next++
	token := s.next
	s.funcs[token] = fn
	return token
}

// remove detaches the callback registered under token, reporting whether
// it was still present (false if it had already been woken).
func (s *notifySet) remove(token uint64) bool {
	if _, ok := s.funcs[token]; !ok {
		return false
	}
	delete(s.funcs, token)
	return true
}

// wakeOne removes and invokes one arbitrarily-chosen callback, if any.
// Reports whether a callback was found.
func (s *notifySet) wakeOne() bool {
	for token, fn := range s.funcs {
		delete(s.funcs, token)
		fn()
		return true
	}
	return false
}

// wakeAll removes and invokes every registered callback. Used only by
// Channel.Close: every waiter needs to observe the channel as both
// readable and writable once it's closed, so a single wakeOne would leave
// the rest stranded.
func (s *notifySet) wakeAll() {
	for token, fn := range s.funcs {
		delete(s.funcs, token)
		fn()
	}
}

// len reports the number of registered callbacks (backs
// *WaitsCount observability).
func (s *notifySet) len() int { return len(s.funcs) }
