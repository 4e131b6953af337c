package sim

import (
	"sort"
	"time"
)

// action is a deferred state transition.
type action int

const (
	actionSkillExpire action = iota
	actionSkillRecover
)

type scheduled struct {
	due time.Duration
	seq uint64
	act action
}

// schedule is a due-time ordered queue of one-shot transitions, drained at
// the start of every step. Entries with equal due times fire in the order
// they were pushed.
type schedule struct {
	items []scheduled
	seq   uint64
}

func (s *schedule) push(due time.Duration, act action) {
	s.seq++
	item := scheduled{due: due, seq: s.seq, act: act}
	i := sort.Search(len(s.items), func(i int) bool {
		return s.items[i].due > due
	})
	s.items = append(s.items, scheduled{})
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = item
}

// popDue removes and returns every action due at or before now.
func (s *schedule) popDue(now time.Duration) []action {
	n := 0
	for n < len(s.items) && s.items[n].due <= now {
		n++
	}
	if n == 0 {
		return nil
	}
	out := make([]action, n)
	for i := range out {
		out[i] = s.items[i].act
	}
	s.items = append(s.items[:0], s.items[n:]...)
	return out
}

func (s *schedule) purge() {
	s.items = s.items[:0]
}

func (s *schedule) len() int {
	return len(s.items)
}
