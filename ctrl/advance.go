package ctrl

// advance holds the pipeline advance pulses of one cycle.
type advance struct {
	fetch     bool
	decode    bool
	writeback bool
}

// sequence computes the advance pulses from the stage handshakes. While
// hold is set no stage advances.
//
// The delayed companions are registered in Tick: new-execute-input is
// decode-advance one cycle later, new-writeback-result is
// new-execute-input one cycle later.
func sequence(in *Inputs, hold bool) (adv advance) {
	if hold {
		return
	}

	adv.fetch = in.ExecuteValid && !in.DecodeBubble
	adv.decode = (in.FetchValid || in.DecodeBubble) && in.ExecuteValid
	adv.writeback = adv.decode

	return
}
