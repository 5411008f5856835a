package ring_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/meow-chip/RouterSoftware/hw"
	"github.com/meow-chip/RouterSoftware/ring"
)

func TestDropVacatesAndAdvances(t *testing.T) {
	h := hw.NewSim()
	h.SetCellState(1, hw.StateIncoming)

	c := ring.NewReceiveCursor(h)
	assert.Equal(t, 1, c.Index())

	c.Drop()
	assert.Equal(t, hw.StateVacant, h.CellState(1))
	assert.Equal(t, 2, c.Index())
}

func TestReceiveCursorWrapsAroundSkippingCellZero(t *testing.T) {
	h := hw.NewSim()
	c := ring.NewReceiveCursor(h)

	for i := 0; i < hw.CellCount-1; i++ {
		c.Drop()
	}
	assert.Equal(t, 1, c.Index())
}

func TestSendCursorNeverAdvances(t *testing.T) {
	h := hw.NewSim()
	c := ring.SendCursor(h)

	go func() {
		h.FlipOutgoingToVacant()
	}()
	c.Send()
	assert.Equal(t, 0, c.Index())
}

func TestSendSetsOutgoingThenWaitsForVacant(t *testing.T) {
	h := hw.NewSim()
	h.OnCommand(nil)
	c := ring.SendCursor(h)

	done := make(chan struct{})
	go func() {
		c.Send()
		close(done)
	}()

	// Wait until Send has marked the cell Outgoing before releasing it: a
	// flip that landed first would be overwritten and leave Send spinning.
	deadline := time.Now().Add(2 * time.Second)
	for h.CellState(0) != hw.StateOutgoing {
		if time.Now().After(deadline) {
			t.Fatal("Send never marked the cell Outgoing")
		}
	}
	h.FlipOutgoingToVacant()
	<-done
	assert.Equal(t, hw.StateVacant, h.CellState(0))
}

func TestParseDistinguishesARPAndIPv4(t *testing.T) {
	h := hw.NewSim()
	c := ring.NewReceiveCursor(h)

	c.WriteEthType(hw.EtherTypeARP)
	p := c.Parse()
	assert.Equal(t, ring.KindARP, p.Kind)

	c.WriteEthType(hw.EtherTypeIPv4)
	p = c.Parse()
	assert.Equal(t, ring.KindIPv4, p.Kind)
	assert.Equal(t, p.HeaderOff+20, p.PayloadOff)

	c.WriteEthType(0x1234)
	p = c.Parse()
	assert.Equal(t, ring.KindUnknown, p.Kind)
}
