// Package neighbor implements the software IP->(MAC, port) neighbor cache
// and its projection into the hardware neighbor-resolution table (spec
// §4.C).
package neighbor

import (
	"net"

	"github.com/meow-chip/RouterSoftware/hw"
)

// EntryCount is the number of software neighbor-cache slots.
const EntryCount = 16

// HardwareSlotCount is the number of hardware neighbor-table slots the
// software cache projects into.
const HardwareSlotCount = 8

// Entry is one neighbor-cache record.
type Entry struct {
	IP      [4]byte
	MAC     [6]byte
	Port    uint8
	HWSlot  *uint8 // nil when not projected into hardware
	Valid   bool
}

// Cache is the bounded 16-entry software neighbor cache with an 8-slot
// hardware projection, as specified in spec §3/§4.C.
type Cache struct {
	hw      hw.Hardware
	entries [EntryCount]Entry
	nptr    int // next slot to evict/overwrite (FIFO)
	nhwptr  int // next hardware slot to (re)program
}

// New constructs an empty neighbor cache bound to the given hardware
// interface for command submission.
func New(h hw.Hardware) *Cache {
	return &Cache{hw: h}
}

// Lookup performs a linear scan for a valid entry matching ip, returning
// its index, or false if absent. O(16), matching spec §4.C.
func (c *Cache) Lookup(ip [4]byte) (int, bool) {
	for i := range c.entries {
		if c.entries[i].Valid && c.entries[i].IP == ip {
			return i, true
		}
	}
	return -1, false
}

// Get returns a copy of the entry at the given index.
func (c *Cache) Get(idx int) Entry {
	return c.entries[idx]
}

// Put inserts (ip, mac, port) at the FIFO cursor nptr, disabling any
// hardware projection the overwritten slot held first. Put does not
// deduplicate: callers must Lookup first if they want idempotent inserts
// (spec §4.C).
func (c *Cache) Put(ip [4]byte, mac [6]byte, port uint8) error {
	victim := &c.entries[c.nptr]
	if victim.Valid && victim.HWSlot != nil {
		if err := c.hw.SubmitCommand(hw.Cmd{Op: hw.OpDisableNCEnt, Idx: *victim.HWSlot}); err != nil {
			return err
		}
	}

	c.entries[c.nptr] = Entry{IP: ip, MAC: mac, Port: port, Valid: true}

	c.nptr = (c.nptr + 1) % EntryCount
	return nil
}

// WriteHardware promotes software entry idx into the next round-robin
// hardware slot (nhwptr), following spec §4.C step by step:
//  1. any software entry still claiming nhwptr has its projection cleared
//     (defensively re-scanning all entries, per spec §9's open question on
//     stale hw_slot pointers, rather than trusting a single back-pointer);
//  2. WriteNCEntIP/MAC/Port + EnableNCEnt are submitted in order with
//     idx = nhwptr;
//  3. entry idx records hw_slot = nhwptr;
//  4. nhwptr advances with wraparound over HardwareSlotCount.
func (c *Cache) WriteHardware(idx int) error {
	slot := uint8(c.nhwptr)

	for i := range c.entries {
		if c.entries[i].Valid && c.entries[i].HWSlot != nil && *c.entries[i].HWSlot == slot {
			c.entries[i].HWSlot = nil
		}
	}

	ent := &c.entries[idx]

	ipCmd := hw.Cmd{Op: hw.OpWriteNCEntIP, Idx: slot}
	// IP/MAC values are submitted in reversed byte order (spec §4.B).
	ipCmd.Data[0], ipCmd.Data[1], ipCmd.Data[2], ipCmd.Data[3] = ent.IP[3], ent.IP[2], ent.IP[1], ent.IP[0]
	if err := c.hw.SubmitCommand(ipCmd); err != nil {
		return err
	}

	macCmd := hw.Cmd{Op: hw.OpWriteNCEntMAC, Idx: slot}
	for i := 0; i < 6; i++ {
		macCmd.Data[i] = ent.MAC[5-i]
	}
	if err := c.hw.SubmitCommand(macCmd); err != nil {
		return err
	}

	portCmd := hw.Cmd{Op: hw.OpWriteNCEntPort, Idx: slot}
	portCmd.Data[0] = ent.Port
	if err := c.hw.SubmitCommand(portCmd); err != nil {
		return err
	}

	if err := c.hw.SubmitCommand(hw.Cmd{Op: hw.OpEnableNCEnt, Idx: slot}); err != nil {
		return err
	}

	ent.HWSlot = &slot
	c.nhwptr = (c.nhwptr + 1) % HardwareSlotCount
	return nil
}

// IPToBytes converts a net.IP to the [4]byte form the cache keys on.
func IPToBytes(ip net.IP) [4]byte {
	var out [4]byte
	v4 := ip.To4()
	copy(out[:], v4)
	return out
}
