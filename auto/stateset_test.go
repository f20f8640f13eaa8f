package auto

import "testing"

func TestStateSetSingleton(t *testing.T) {
	s := NewStateSet(StateId(3))
	if s.Len() != 1 || !s.IsReduced() {
		t.Fatalf("NewStateSet: got Len=%d IsReduced=%v", s.Len(), s.IsReduced())
	}
	if s.UnwrapReduced() != 3 {
		t.Fatalf("UnwrapReduced: got %v", s.UnwrapReduced())
	}
	if !s.Contains(3) || s.Contains(4) {
		t.Fatalf("Contains: wrong membership")
	}
}

func TestStateSetInsertGrows(t *testing.T) {
	s := NewStateSet(StateId(5))
	s.Insert(5) // no-op, already present
	if s.Len() != 1 {
		t.Fatalf("Insert duplicate: Len=%d, want 1", s.Len())
	}
	s.Insert(2)
	s.Insert(8)
	if s.IsReduced() {
		t.Fatalf("Insert: expected non-singleton after distinct inserts")
	}
	want := []StateId{2, 5, 8}
	got := s.Ids()
	if len(got) != len(want) {
		t.Fatalf("Ids: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Ids: got %v, want %v", got, want)
		}
	}
	if !s.Contains(8) || s.Contains(9) {
		t.Fatalf("Contains after growth: wrong membership")
	}
}

func TestStateSetUnwrapReducedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("UnwrapReduced: expected panic on non-singleton set")
		}
	}()
	s := NewStateSet(StateId(1))
	s.Insert(2)
	s.UnwrapReduced()
}

func TestMergeStateSets(t *testing.T) {
	a := NewStateSet(StateId(1))
	b := NewStateSet(StateId(2))
	m := MergeStateSets(a, b)
	if m.Len() != 2 || !m.Contains(1) || !m.Contains(2) {
		t.Fatalf("MergeStateSets: got %v", m.Ids())
	}
}

// TestMergeStateSetsDoesNotMutateSharedBackingArray guards against the
// regression where MergeStateSets(a, b) started from a plain struct copy of
// a, which still shares a.multi's backing array; inserting into the copy
// then wrote into spare capacity that belonged to a (or to any other
// StateSet value copied from the same array, e.g. via ConstructorSet.Clone's
// shallow copy).
func TestMergeStateSetsDoesNotMutateSharedBackingArray(t *testing.T) {
	a := StateSet{multi: make([]StateId, 2, 8)}
	a.multi[0], a.multi[1] = 1, 3
	clone := a // shares a's backing array, like a value copy or a shallow Clone

	MergeStateSets(clone, NewStateSet(StateId(2)))

	probe := a.multi[:cap(a.multi)]
	if probe[2] == 2 {
		t.Fatalf("MergeStateSets wrote into a's spare capacity via an aliased copy")
	}
	if a.Len() != 2 || !a.Contains(1) || !a.Contains(3) {
		t.Fatalf("MergeStateSets mutated a itself: got %v", a.Ids())
	}
}

func TestShiftStateSet(t *testing.T) {
	s := NewStateSet(StateId(1))
	s.Insert(3)
	shifted := ShiftStateSet(s, 10)
	want := map[StateId]bool{11: true, 13: true}
	for _, id := range shifted.Ids() {
		if !want[id] {
			t.Fatalf("ShiftStateSet: unexpected id %v", id)
		}
		delete(want, id)
	}
	if len(want) != 0 {
		t.Fatalf("ShiftStateSet: missing ids %v", want)
	}
}
