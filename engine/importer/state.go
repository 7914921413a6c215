package importer

// ImporterState captures what the importer currently believes about its
// position relative to the network and whether an import is in flight.
//
// Updates produce a new value; the state is owned and mutated exclusively by
// the engine's worker goroutine.
type ImporterState struct {
	// onTip is the last signal from the fetcher: true when we have caught up
	// to the network tip.
	onTip bool

	// importing is true while an import goroutine is in flight. It is a
	// mutual-exclusion flag, not a counter: at most one import runs at a
	// time.
	importing bool
}

func initialState() ImporterState {
	return ImporterState{}
}

func (s ImporterState) withOnTip(onTip bool) ImporterState {
	s.onTip = onTip
	return s
}

func (s ImporterState) beginImport() ImporterState {
	s.importing = true
	return s
}

func (s ImporterState) endImport() ImporterState {
	s.importing = false
	return s
}

// canImportSingleBlock reports whether a mined or peer-broadcast block may be
// imported right now. Single-block imports only make sense at the chain tip,
// and never while another import is in flight.
func (s ImporterState) canImportSingleBlock() bool {
	return s.onTip && !s.importing
}
