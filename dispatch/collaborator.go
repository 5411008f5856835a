// Package dispatch implements the single-threaded dispatch loop (spec
// §4.F): polling the buffer ring, parsing frames, answering ARP and ICMP
// locally, handing raw UDP payloads to the external routing-protocol
// collaborator, and serving that collaborator's rule updates, ARP lookups
// and packet sends.
package dispatch

import "github.com/meow-chip/RouterSoftware/routing"

// Collaborator is the inbound half of the external routing-protocol
// boundary (spec §6): the dispatch loop calls ReceiveIPPacket on it for
// every UDP IPv4 frame it sees, handing the RIP-like protocol running
// above this firmware its own payloads. It is out of scope for this
// module — only the interface is implemented here, mirroring the
// teacher's narrow, mockable interfaces at every collaboration boundary
// (ndisapi_interface.go).
type Collaborator interface {
	// ReceiveIPPacket delivers an inbound UDP IPv4 frame's payload to the
	// collaborator, along with the sender's MAC and the receiving
	// interface.
	ReceiveIPPacket(payload []byte, srcMac [6]byte, ifIndex uint8)
}

// RouterAPI is the outbound half of the boundary: the services this
// firmware exposes for the collaborator to call into (spec §6). *Loop
// implements it.
type RouterAPI interface {
	// UpdateRule inserts, updates or deletes a rule keyed by
	// (Prefix, Len). On insert of a rule with an existing (Prefix, Len)
	// key, the rule with the lower Metric is kept. Returns true if the
	// rule set changed as a result; a changed rule set is rebuilt into
	// the trie on the next loop iteration.
	UpdateRule(insert bool, r routing.Rule) bool

	// ArpGetMac resolves ip on interface ifIndex against the neighbor
	// cache. ok is false on a miss.
	ArpGetMac(ifIndex uint8, ip [4]byte) (mac [6]byte, ok bool)

	// SendIPPacket transmits an IPv4 payload out ifIndex to dstMac using
	// the send cursor.
	SendIPPacket(buf []byte, ifIndex uint8, dstMac [6]byte) error
}
