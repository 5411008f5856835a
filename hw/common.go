// Package hw models the memory-mapped hardware surface the MeowRouter
// firmware talks to: the buffer-ring cells shared with the NIC datapath and
// the one-way command register used to push configuration into it.
package hw

import "net"

// Base addresses of the three memory-mapped regions the firmware talks to.
// These are the interface contract with the hardware, not policy: a real
// deployment maps them over /dev/mem (or the embedded target's bus) at
// exactly these offsets.
const (
	UARTBase  = 0xFFFF_0000_0000
	RingBase  = 0xFFFF_3000_0000
	CmdBase   = 0xFFFF_4000_0000
	UARTRange = 0x10
	CmdRange  = 8
)

// UART register offsets, relative to UARTBase.
const (
	UARTDataOffset   = 4
	UARTStatusOffset = 8
	// UARTStatusFIFOEmpty is bit 2 of the status register.
	UARTStatusFIFOEmpty = 1 << 2
)

// Buffer ring geometry (spec §3, §6).
const (
	CellSize  = 2048
	CellCount = 8
	RingSize  = CellSize * CellCount

	// Field offsets within a cell.
	OffsetDestMAC  = 0
	OffsetSrcMAC   = 6
	OffsetVLAN     = 12
	OffsetPort     = 15
	OffsetEthType  = 16
	OffsetL3       = 18
	OffsetICMPBody = OffsetL3 + 20

	// Trailing fields, relative to the end of a cell.
	TrailerLen   = 4 // 2-byte frame length lives here
	TrailerState = 1 // 1-byte state byte lives here

	EtherHeaderLen = 18
)

// State is the one-byte state machine driving a buffer cell.
type State uint8

const (
	StateVacant      State = 0
	StateIncoming    State = 1
	StateOutgoing    State = 2
	StateForwardMiss State = 3
	StateARPMiss     State = 4
)

func (s State) String() string {
	switch s {
	case StateVacant:
		return "Vacant"
	case StateIncoming:
		return "Incoming"
	case StateOutgoing:
		return "Outgoing"
	case StateForwardMiss:
		return "ForwardMiss"
	case StateARPMiss:
		return "ARPMiss"
	default:
		return "Unknown"
	}
}

// EtherType is stored little-endian in the cell, the wire value byte-swapped.
type EtherType uint16

const (
	EtherTypeARP  EtherType = 0x0608
	EtherTypeIPv4 EtherType = 0x0008
)

// Op identifies a command-channel operation (spec §4.B).
type Op uint8

const (
	OpNop Op = iota
	OpSetIP
	OpSetMAC
	OpWriteNCEntIP
	OpWriteNCEntMAC
	OpWriteNCEntPort
	OpEnableNCEnt
	OpDisableNCEnt
)

// Cmd is the 8-byte command record submitted to the command register.
type Cmd struct {
	Op   Op
	Idx  uint8
	Data [6]byte
}

// PortConfig is the boot-time IP/MAC assignment for one physical port.
type PortConfig struct {
	IP  net.IP
	MAC net.HardwareAddr
}

// PortCount is the number of physical router ports.
const PortCount = 5

// DefaultPorts are the stock per-port IP/MAC assignments from spec §6. The
// values are policy, not contract — only the reversed-byte-order wire
// format of Cmd.Data is the interface contract.
func DefaultPorts() [PortCount]PortConfig {
	mac := func(last byte) net.HardwareAddr {
		return net.HardwareAddr{0x9C, 0xEB, 0x00, 0x00, 0x00, last}
	}
	return [PortCount]PortConfig{
		{IP: net.IPv4(10, 0, 0, 1).To4(), MAC: net.HardwareAddr{0x9C, 0xEB, 0x00, 0x00, 0x01, 0x00}},
		{IP: net.IPv4(192, 168, 0, 1).To4(), MAC: mac(0x01)},
		{IP: net.IPv4(192, 168, 1, 1).To4(), MAC: mac(0x02)},
		{IP: net.IPv4(192, 168, 2, 1).To4(), MAC: mac(0x03)},
		{IP: net.IPv4(192, 168, 3, 1).To4(), MAC: mac(0x04)},
	}
}
