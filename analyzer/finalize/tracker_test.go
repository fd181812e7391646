package finalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/trxlint/analyzer/finalize"
	"github.com/viant/trxlint/internal/testsource"
)

func TestIsFinalization(t *testing.T) {
	tests := []struct {
		source string
		expect bool
	}{
		{source: "trx.commit()", expect: true},
		{source: "trx.rollback(err)", expect: true},
		{source: "(trx).commit()", expect: true},
		{source: "tx.commit()", expect: false},
		{source: "this.trx.commit()", expect: false},
		{source: "trx.savepoint()", expect: false},
		{source: "trx['commit']()", expect: false},
	}

	for _, tc := range tests {
		t.Run(tc.source, func(t *testing.T) {
			file := testsource.Parse(t, tc.source)
			call := testsource.Call(t, file, tc.source)
			assert.Equal(t, tc.expect, finalize.IsFinalization(call, file.Source))
		})
	}
}

func TestTracker(t *testing.T) {
	file := testsource.Parse(t, "trx.commit(); a.b(); trx.rollback(); c.d(); e.f();")
	calls := testsource.Calls(file)
	commit, first, rollback, second, third := calls[0], calls[1], calls[2], calls[3], calls[4]

	tracker := &finalize.Tracker{}
	assert.False(t, tracker.Observe(commit, file.Source), "no frame open")
	assert.False(t, tracker.Finalized(first))

	tracker.Enter()
	assert.True(t, tracker.Observe(commit, file.Source))
	assert.True(t, tracker.Finalized(first))
	assert.False(t, tracker.Finalized(commit), "strictly before")

	tracker.Enter()
	assert.Equal(t, 2, tracker.Depth())
	assert.True(t, tracker.Finalized(second), "outer frame applies to nested functions")
	assert.False(t, tracker.Observe(first, file.Source))
	tracker.Exit()

	tracker.Exit()
	assert.Equal(t, 0, tracker.Depth())
	assert.False(t, tracker.Finalized(third))

	tracker.Enter()
	tracker.Enter()
	assert.True(t, tracker.Observe(rollback, file.Source))
	assert.False(t, tracker.Finalized(first))
	assert.True(t, tracker.Finalized(second))
	tracker.Exit()
	assert.False(t, tracker.Finalized(third), "inner frame discarded on exit")
	tracker.Exit()
	tracker.Exit()
	assert.Equal(t, 0, tracker.Depth())
}
