package hw

// Field constants for the frame types the firmware parses directly out of a
// buffer cell, using the cell's own offsets rather than struct overlays:
// the dispatch loop reads/writes these fields straight out of the ring at
// fixed byte offsets (ring.Cursor.ReadL3/WriteL3 and friends), the same way
// the teacher's datapath addresses its DMA'd buffers by offset instead of
// casting them to a header struct. Values here are stored exactly as they
// sit in cell memory (little-endian host view of what the wire carries
// big-endian), per spec §3.

// ARP hardware/protocol-type and opcode constants, pre-byte-swapped the same
// way the original firmware's data/arp.rs keeps them: the cell stores the
// wire's big-endian value as a little-endian host word.
const (
	ArpHTypeEth  uint16 = 0x0100
	ArpOpRequest uint16 = 0x0100
	ArpOpReply   uint16 = 0x0200
	ArpProtoIPv4 uint16 = uint16(EtherTypeIPv4)
	ArpHWLen     uint8  = 6
	ArpProtoLen  uint8  = 4
)

// IP protocol numbers the dispatch loop cares about.
const (
	IPProtoICMP = 0x01
	IPProtoIGMP = 0x02
	IPProtoTCP  = 0x06
	IPProtoUDP  = 0x11
)

// ICMPType values used by the echo request/reply path.
const (
	ICMPTypeEchoReply   uint8 = 0
	ICMPTypeEchoRequest uint8 = 8
)
