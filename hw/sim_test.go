package hw_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meow-chip/RouterSoftware/hw"
)

func TestSimCellStateRoundTrip(t *testing.T) {
	s := hw.NewSim()
	assert.Equal(t, hw.StateVacant, s.CellState(1))

	s.SetCellState(1, hw.StateIncoming)
	assert.Equal(t, hw.StateIncoming, s.CellState(1))
}

func TestSimInjectIncoming(t *testing.T) {
	s := hw.NewSim()
	frame := make([]byte, 60)
	frame[0] = 0xAA
	s.InjectIncoming(2, frame)

	assert.Equal(t, hw.StateIncoming, s.CellState(2))
	assert.Equal(t, byte(0xAA), s.ReadByte(hw.CellOffset(2, 0)))
	assert.Equal(t, uint16(60), s.ReadUint16LE(hw.LengthOffset(2)))
}

func TestSimSubmitCommandLog(t *testing.T) {
	s := hw.NewSim()
	c := hw.Cmd{Op: hw.OpSetIP, Idx: 1, Data: [6]byte{10, 0, 0, 1}}
	require := func(cond bool) {
		if !cond {
			t.Fatal("command not recorded")
		}
	}
	assert.NoError(t, s.SubmitCommand(c))
	cmds := s.Commands()
	require(len(cmds) == 1)
	assert.Equal(t, c, cmds[0])
}

func TestSimWriteUART(t *testing.T) {
	s := hw.NewSim()
	s.WriteUART('h')
	s.WriteUART('i')
	assert.Equal(t, []byte("hi"), s.UARTOutput())
}
