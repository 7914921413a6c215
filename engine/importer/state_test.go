package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImporterStateTransitions(t *testing.T) {
	state := initialState()
	assert.False(t, state.onTip)
	assert.False(t, state.importing)

	state = state.withOnTip(true)
	assert.True(t, state.onTip)

	// repeated receipt changes nothing beyond the flag
	state = state.withOnTip(true)
	assert.True(t, state.onTip)
	assert.False(t, state.importing)

	state = state.beginImport()
	assert.True(t, state.importing)
	assert.True(t, state.onTip)

	state = state.endImport()
	assert.False(t, state.importing)

	state = state.withOnTip(false)
	assert.False(t, state.onTip)
}

func TestImporterStateSingleBlockGate(t *testing.T) {
	cases := []struct {
		name      string
		onTip     bool
		importing bool
		expected  bool
	}{
		{"on tip and idle", true, false, true},
		{"on tip but importing", true, true, false},
		{"behind tip and idle", false, false, false},
		{"behind tip and importing", false, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := ImporterState{onTip: tc.onTip, importing: tc.importing}
			assert.Equal(t, tc.expected, state.canImportSingleBlock())
		})
	}
}

func TestImporterStateValueSemantics(t *testing.T) {
	state := initialState().withOnTip(true)
	derived := state.beginImport()

	// updates produce a new value, the original is untouched
	assert.False(t, state.importing)
	assert.True(t, derived.importing)
}
