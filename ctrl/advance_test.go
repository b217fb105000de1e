package ctrl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ctrlunit/config"
)

func TestSequence(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		fetchValid   bool
		executeValid bool
		decodeBubble bool
		fetch        bool
		decode       bool
	}){
		{false, false, false, false, false},
		{true, false, false, false, false},
		{false, true, false, true, false},
		{true, true, false, true, true},
		{false, true, true, false, true},
		{true, true, true, false, true},
		{true, false, true, false, false},
	}

	for n, entry := range table {
		in := &Inputs{
			FetchValid:   entry.fetchValid,
			ExecuteValid: entry.executeValid,
			DecodeBubble: entry.decodeBubble,
		}
		adv := sequence(in, false)
		assert.Equal(entry.fetch, adv.fetch, n)
		assert.Equal(entry.decode, adv.decode, n)
		assert.Equal(entry.decode, adv.writeback, n)

		assert.Equal(advance{}, sequence(in, true), n)
	}
}

func TestDelayedStrobes(t *testing.T) {
	assert := assert.New(t)

	c := NewControl(config.Default())

	out := c.Tick(Inputs{FetchValid: true, ExecuteValid: true})
	assert.True(out.DecodeAdvance)
	assert.True(out.WritebackAdvance)
	assert.False(out.ExecuteNewInput)

	out = c.Tick(Inputs{})
	assert.False(out.DecodeAdvance)
	assert.True(out.ExecuteNewInput)
	assert.False(out.WritebackNewResult)

	out = c.Tick(Inputs{})
	assert.False(out.ExecuteNewInput)
	assert.True(out.WritebackNewResult)

	out = c.Tick(Inputs{})
	assert.False(out.WritebackNewResult)
}

func TestFlush(t *testing.T) {
	assert := assert.New(t)

	running := Inputs{FetchValid: true, ExecuteValid: true}
	zero := func(out Outputs) {
		assert.True(out.PipelineFlush)
		assert.False(out.FetchAdvance)
		assert.False(out.DecodeAdvance)
		assert.False(out.WritebackAdvance)
	}

	// No flush while running.
	c := NewControl(config.Default())
	for range 4 {
		out := c.Tick(running)
		assert.False(out.PipelineFlush)
		assert.True(out.FetchAdvance)
	}

	// A fresh exception flushes once, even with the cause held.
	in := running
	in.Causes = MakeCauses(CAUSE_ILLEGAL)
	zero(c.Tick(in))
	out := c.Tick(in)
	assert.False(out.PipelineFlush)
	assert.False(out.Exception)

	// RFE committing flushes.
	c = NewControl(config.Default())
	toWriteback(c)
	in = running
	in.Rfe = true
	zero(c.Tick(in))
	assert.True(c.RfeInProgress)

	// The new result after an exception flush is suppressed.
	c = NewControl(config.Default())
	c.Tick(running)
	in = running
	in.Causes = MakeCauses(CAUSE_ALIGN)
	zero(c.Tick(in))
	out = c.Tick(Inputs{})
	assert.False(out.WritebackNewResult)

	// A debugger stall flushes until it is released.
	c = NewControl(config.Default())
	toWriteback(c)
	stall := running
	stall.Debug.Stall = true
	out = c.Tick(stall)
	assert.False(out.PipelineFlush)
	assert.True(c.CpuStalled)
	for range 3 {
		zero(c.Tick(stall))
	}
	out = c.Tick(running)
	zero(out)
	assert.True(out.Restart)
	assert.False(c.CpuStalled)
	out = c.Tick(running)
	assert.False(out.PipelineFlush)
	assert.True(out.FetchAdvance)
}
