package auto

import "fmt"

// Debug gates the internal invariant walks (flow symmetry, reduced-ness,
// polarity agreement) described in spec section 7.3. They are not free --
// flow-symmetry checking in particular walks every state -- so production
// builds leave this false and tests that want the extra assurance flip it
// on, mirroring the host language's debug-assertions switch.
var Debug = false

func debugAssert(cond bool, msg string, args ...any) {
	if !Debug || cond {
		return
	}
	text := fmt.Sprintf(msg, args...)
	tracer().Errorf("invariant violated: %s", text)
	panic("auto: invariant violated: " + text)
}
