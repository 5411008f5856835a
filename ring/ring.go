// Package ring implements the buffer-ring protocol (spec §4.A): the
// memory-mapped, single-producer/single-consumer exchange of Ethernet
// frames between the firmware and the NIC datapath.
package ring

import (
	"encoding/binary"

	"github.com/meow-chip/RouterSoftware/hw"
)

// Cursor is a position in the buffer ring: either the fixed send cell (0)
// or one of the seven receive cells (1..7), wrapping 7->1. It never visits
// cell 0 while receiving, matching buf.rs's BufHandle::step.
type Cursor struct {
	idx int
	hw  hw.Hardware
}

// NewReceiveCursor returns a cursor starting at cell 1, the first receive
// slot.
func NewReceiveCursor(h hw.Hardware) *Cursor {
	return &Cursor{idx: 1, hw: h}
}

// SendCursor returns the fixed send cursor, always cell 0.
func SendCursor(h hw.Hardware) *Cursor {
	return &Cursor{idx: 0, hw: h}
}

// Index returns the cell index this cursor currently refers to.
func (c *Cursor) Index() int { return c.idx }

// Probe performs a volatile read of the cell's state byte.
func (c *Cursor) Probe() hw.State {
	return c.hw.CellState(c.idx)
}

// Kind distinguishes the parsed shape of a cell's L3 payload.
type Kind int

const (
	KindUnknown Kind = iota
	KindARP
	KindIPv4
)

// Parsed is the outcome of parsing a cell, a tagged variant mirroring the
// original firmware's ParsedBufHandle: ARP carries only the cell offset of
// the ARP body; IPv4 bundles the offset of the 20-byte IP header and the
// offset of the L3 payload following it, so callers never recompute offsets
// (spec §9 "variant type for parsed frames").
type Parsed struct {
	Kind       Kind
	HeaderOff  int // offset of the ARP header, or the IPv4 header
	PayloadOff int // offset of the IPv4 payload (header+20); zero for ARP
}

// Parse reads the EtherType field and returns typed offsets into the cell.
func (c *Cursor) Parse() Parsed {
	et := hw.EtherType(c.hw.ReadUint16LE(hw.CellOffset(c.idx, hw.OffsetEthType)))
	switch et {
	case hw.EtherTypeARP:
		return Parsed{Kind: KindARP, HeaderOff: hw.CellOffset(c.idx, hw.OffsetL3)}
	case hw.EtherTypeIPv4:
		headerOff := hw.CellOffset(c.idx, hw.OffsetL3)
		return Parsed{Kind: KindIPv4, HeaderOff: headerOff, PayloadOff: headerOff + 20}
	default:
		return Parsed{Kind: KindUnknown}
	}
}

// Drop marks the cell Vacant and advances the receive cursor. It is a
// no-op on the send cursor's step (cell 0 never advances).
func (c *Cursor) Drop() {
	c.hw.SetCellState(c.idx, hw.StateVacant)
	c.step()
}

// Send marks the cell Outgoing and block-polls until the NIC flips it back
// to Vacant after DMA completion, then advances. Per spec §4.A this is the
// only suspension point besides the UART spin in hw.Hardware.WriteUART.
func (c *Cursor) Send() {
	c.hw.SetCellState(c.idx, hw.StateOutgoing)
	for c.hw.CellState(c.idx) != hw.StateVacant {
	}
	c.step()
}

func (c *Cursor) step() {
	if c.idx == 0 {
		return
	}
	if c.idx == hw.CellCount-1 {
		c.idx = 1
	} else {
		c.idx++
	}
}

// Dest returns the destination MAC of the cell's Ethernet header.
func (c *Cursor) Dest() [6]byte { return c.readMAC(hw.OffsetDestMAC) }

// Src returns the source MAC of the cell's Ethernet header.
func (c *Cursor) Src() [6]byte { return c.readMAC(hw.OffsetSrcMAC) }

func (c *Cursor) readMAC(fieldOff int) [6]byte {
	var mac [6]byte
	copy(mac[:], c.hw.ReadBytes(hw.CellOffset(c.idx, fieldOff), 6))
	return mac
}

// WriteDest sets the destination MAC of the cell's Ethernet header.
func (c *Cursor) WriteDest(mac [6]byte) {
	c.hw.WriteBytes(hw.CellOffset(c.idx, hw.OffsetDestMAC), mac[:])
}

// WriteSrc sets the source MAC of the cell's Ethernet header.
func (c *Cursor) WriteSrc(mac [6]byte) {
	c.hw.WriteBytes(hw.CellOffset(c.idx, hw.OffsetSrcMAC), mac[:])
}

// Port returns the VLAN-tag low byte identifying the physical port a frame
// arrived on (or should be emitted to).
func (c *Cursor) Port() uint8 {
	return c.hw.ReadByte(hw.CellOffset(c.idx, hw.OffsetPort))
}

// WritePort sets the cell's port field. This also writes the fixed VLAN
// prefix bytes the original firmware's write_port emits alongside the port
// byte.
func (c *Cursor) WritePort(port uint8) {
	c.hw.WriteUint16LE(hw.CellOffset(c.idx, hw.OffsetVLAN), 0x0081)
	c.hw.WriteByte(hw.CellOffset(c.idx, hw.OffsetPort), port)
}

// EthType returns the cell's EtherType field.
func (c *Cursor) EthType() hw.EtherType {
	return hw.EtherType(c.hw.ReadUint16LE(hw.CellOffset(c.idx, hw.OffsetEthType)))
}

// WriteEthType sets the cell's EtherType field.
func (c *Cursor) WriteEthType(t hw.EtherType) {
	c.hw.WriteUint16LE(hw.CellOffset(c.idx, hw.OffsetEthType), uint16(t))
}

// PayloadLen reads the frame-length trailer (bytes, including the 18-byte
// Ethernet header).
func (c *Cursor) PayloadLen() uint16 {
	return c.hw.ReadUint16LE(hw.LengthOffset(c.idx))
}

// WritePayloadLen writes the frame-length trailer for an outbound frame.
// len is the L3 payload length; the 18-byte Ethernet header is added, per
// buf.rs's write_payload_len.
func (c *Cursor) WritePayloadLen(l3Len uint16) {
	c.hw.WriteUint16LE(hw.LengthOffset(c.idx), l3Len+hw.EtherHeaderLen)
}

// Data returns the absolute ring offset of the cell's L3 header.
func (c *Cursor) Data() int {
	return hw.CellOffset(c.idx, hw.OffsetL3)
}

// ReadL3 reads n bytes starting at the L3 header.
func (c *Cursor) ReadL3(off, n int) []byte {
	return c.hw.ReadBytes(c.Data()+off, n)
}

// WriteL3 writes data starting at offset off within the L3 header.
func (c *Cursor) WriteL3(off int, data []byte) {
	c.hw.WriteBytes(c.Data()+off, data)
}

// ReadL3Uint16BE reads a big-endian 16-bit field at offset off within the
// L3 header — IPv4 total length, identification and similar wire fields
// are big-endian even though the cell's own scalar fields (EtherType,
// length trailer) are stored little-endian.
func (c *Cursor) ReadL3Uint16BE(off int) uint16 {
	return binary.BigEndian.Uint16(c.ReadL3(off, 2))
}

// WriteL3Uint16BE writes a big-endian 16-bit field at offset off within the
// L3 header.
func (c *Cursor) WriteL3Uint16BE(off int, v uint16) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	c.WriteL3(off, buf[:])
}

// ReadL3Uint16LE reads a little-endian 16-bit field at offset off within
// the L3 header — ARP's htype/ptype/op fields follow the same
// little-endian-reinterpreted-big-endian-wire convention as EtherType
// (hw.EtherTypeARP, hw.ArpOpRequest and friends), unlike the IPv4 fields
// ReadL3Uint16BE serves.
func (c *Cursor) ReadL3Uint16LE(off int) uint16 {
	return binary.LittleEndian.Uint16(c.ReadL3(off, 2))
}

// WriteL3Uint16LE writes a little-endian 16-bit field at offset off within
// the L3 header.
func (c *Cursor) WriteL3Uint16LE(off int, v uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	c.WriteL3(off, buf[:])
}
