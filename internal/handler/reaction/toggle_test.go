package reaction

import (
	"math/rand"
	"testing"
)

// counterState mirrors the transactional state: a membership set plus the
// cached counter, mutated only through toggleDelta.
type counterState struct {
	members map[string]bool
	count   int64
}

func (s *counterState) apply(uid string, active bool) {
	delta, changed := toggleDelta(s.members[uid], active)
	if !changed {
		return
	}
	if active {
		s.members[uid] = true
	} else {
		delete(s.members, uid)
	}
	s.count += delta
}

func TestToggleDelta(t *testing.T) {
	tests := []struct {
		exists, active bool
		wantDelta      int64
		wantChanged    bool
	}{
		{false, true, 1, true},
		{true, false, -1, true},
		{true, true, 0, false},
		{false, false, 0, false},
	}
	for _, tt := range tests {
		delta, changed := toggleDelta(tt.exists, tt.active)
		if delta != tt.wantDelta || changed != tt.wantChanged {
			t.Errorf("toggleDelta(%v, %v) = %d, %v, want %d, %v",
				tt.exists, tt.active, delta, changed, tt.wantDelta, tt.wantChanged)
		}
	}
}

func TestDoubleLikeIncrementsOnce(t *testing.T) {
	s := &counterState{members: map[string]bool{}}
	s.apply("user-a", true)
	s.apply("user-a", true)
	if s.count != 1 {
		t.Errorf("count after double like = %d, want 1", s.count)
	}
}

func TestUnlikeWithoutLikeIsNoOp(t *testing.T) {
	s := &counterState{members: map[string]bool{}}
	s.apply("user-a", false)
	if s.count != 0 {
		t.Errorf("count after unlike of non-member = %d, want 0", s.count)
	}
}

// The final counter must equal the number of users whose last call was
// active, for any interleaving.
func TestInterleavedTogglesConverge(t *testing.T) {
	users := []string{"u1", "u2", "u3", "u4", "u5"}
	rng := rand.New(rand.NewSource(1))

	for trial := range 100 {
		s := &counterState{members: map[string]bool{}}
		last := map[string]bool{}
		for range 200 {
			uid := users[rng.Intn(len(users))]
			active := rng.Intn(2) == 0
			s.apply(uid, active)
			last[uid] = active
		}

		want := int64(0)
		for _, active := range last {
			if active {
				want++
			}
		}
		if s.count != want {
			t.Fatalf("trial %d: count = %d, want %d (members=%v)", trial, s.count, want, s.members)
		}
		if int64(len(s.members)) != s.count {
			t.Fatalf("trial %d: counter %d != membership cardinality %d", trial, s.count, len(s.members))
		}
	}
}
