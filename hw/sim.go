package hw

import (
	"sync"
)

// Sim is an in-process simulated NIC backend implementing Hardware without
// any real memory mapping. It is the backend cmd/meowrouterd uses in
// "-hw=sim" mode and the one every package test in this module drives the
// dispatch loop, ring and neighbor cache against.
//
// There is no real device to map here, so this is one of the few places in
// the module that has no third-party library home: a simulated NIC is, by
// definition, plain in-process state.
type Sim struct {
	mu      sync.Mutex
	ring    [RingSize]byte
	uart    []byte
	cmdLog  []Cmd
	onCmd   func(Cmd) error
}

var _ Hardware = (*Sim)(nil)

// NewSim constructs a zeroed simulated ring. All cells start Vacant.
func NewSim() *Sim {
	return &Sim{}
}

// OnCommand installs a hook invoked synchronously from SubmitCommand, used
// by tests to observe (or fail) command submissions — e.g. simulating a
// hardware neighbor table.
func (s *Sim) OnCommand(f func(Cmd) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onCmd = f
}

// Commands returns a copy of every command submitted so far, in order.
func (s *Sim) Commands() []Cmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Cmd, len(s.cmdLog))
	copy(out, s.cmdLog)
	return out
}

// UARTOutput returns every diagnostic byte written so far.
func (s *Sim) UARTOutput() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, len(s.uart))
	copy(out, s.uart)
	return out
}

// InjectIncoming writes a raw frame into receive cell idx and flips its
// state to Incoming, simulating the NIC delivering a frame. idx must be in
// [1, CellCount).
func (s *Sim) InjectIncoming(idx int, frame []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	base := idx * CellSize
	copy(s.ring[base+OffsetDestMAC:], frame)
	s.writeUint16LELocked(LengthOffset(idx), uint16(len(frame)))
	s.writeStateLocked(idx, StateIncoming)
}

// FlipOutgoingToVacant simulates the NIC completing DMA of an outgoing
// frame, the event Send spins on: every cell currently in Outgoing, the send
// cell or a receive cell, is set back to Vacant.
func (s *Sim) FlipOutgoingToVacant() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for idx := 0; idx < CellCount; idx++ {
		if State(s.ring[StateOffset(idx)]) == StateOutgoing {
			s.writeStateLocked(idx, StateVacant)
		}
	}
}

func (s *Sim) ReadByte(off int) byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ring[off]
}

func (s *Sim) WriteByte(off int, v byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ring[off] = v
}

func (s *Sim) ReadBytes(off, n int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, n)
	copy(out, s.ring[off:off+n])
	return out
}

func (s *Sim) WriteBytes(off int, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy(s.ring[off:], data)
}

func (s *Sim) ReadUint16LE(off int) uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint16(s.ring[off]) | uint16(s.ring[off+1])<<8
}

func (s *Sim) WriteUint16LE(off int, v uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeUint16LELocked(off, v)
}

func (s *Sim) writeUint16LELocked(off int, v uint16) {
	s.ring[off] = byte(v)
	s.ring[off+1] = byte(v >> 8)
}

func (s *Sim) CellState(idx int) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State(s.ring[StateOffset(idx)])
}

func (s *Sim) SetCellState(idx int, st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeStateLocked(idx, st)
}

func (s *Sim) writeStateLocked(idx int, st State) {
	s.ring[StateOffset(idx)] = byte(st)
}

func (s *Sim) SubmitCommand(c Cmd) error {
	s.mu.Lock()
	hook := s.onCmd
	s.cmdLog = append(s.cmdLog, c)
	s.mu.Unlock()

	if hook != nil {
		if err := hook(c); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sim) WriteUART(b byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uart = append(s.uart, b)
}
