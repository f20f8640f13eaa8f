package auto

import (
	"fmt"

	"github.com/andrewhickman/mlsub"
)

// StateId is an opaque arena index into an Automaton's state slice. It is
// never reused and never dereferences directly; all access goes through
// Automaton.Index / Automaton.IndexMut2.
type StateId uint32

func (id StateId) String() string {
	return fmt.Sprintf("s%d", uint32(id))
}

// Shift rebases id by offset, used when one automaton's states are appended
// into another (Automaton.Append, Automaton.CloneStates).
func (id StateId) Shift(offset uint32) StateId {
	return StateId(uint32(id) + offset)
}

// StateRange is a contiguous run of newly added state ids, returned by
// Automaton.Append (which CloneStates uses to graft a reduced copy on).
// Reduce and CloneStates themselves return the new root ids as a slice.
type StateRange struct {
	From StateId
	To   StateId // exclusive
}

// Len returns the number of ids in the range.
func (r StateRange) Len() int {
	return int(r.To) - int(r.From)
}

// At returns the i'th id in the range.
func (r StateRange) At(i int) StateId {
	return r.From + StateId(i)
}

// Contains reports whether id falls within the range.
func (r StateRange) Contains(id StateId) bool {
	return id >= r.From && id < r.To
}

// Root names a state together with the polarity it should be treated as
// having for the purposes of Reduce/CloneStates (normally just its actual
// polarity, but callers are responsible for passing one consistent with
// invariant I6).
type Root struct {
	Id  StateId
	Pol mlsub.Polarity
}
