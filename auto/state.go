package auto

import "github.com/andrewhickman/mlsub"

// State is one arena record: a fixed polarity (I1, checked only in debug
// builds), a constructor set, and a flow set. A state stores no outgoing
// transitions separately -- they live inside the parameters of whatever
// constructors its ConstructorSet holds.
type State[C Constructor[C]] struct {
	pol  mlsub.Polarity
	Cons ConstructorSet[C]
	Flow FlowSet
}

// Polarity returns the state's fixed polarity.
func (s *State[C]) Polarity() mlsub.Polarity {
	return s.pol
}

func newState[C Constructor[C]](pol mlsub.Polarity) State[C] {
	return State[C]{pol: pol}
}
