package dispatch

import (
	"encoding/binary"

	"github.com/meow-chip/RouterSoftware/forward"
	"github.com/meow-chip/RouterSoftware/hw"
	"github.com/meow-chip/RouterSoftware/neighbor"
	"github.com/meow-chip/RouterSoftware/ring"
	"github.com/meow-chip/RouterSoftware/routing"
)

// MaxTrieNodes bounds the routing-trie arena (spec §4.D: "4096-16384 nodes"
// for up to routing.MaxRules rules).
const MaxTrieNodes = 16384

// echoReplyTTL is the TTL stamped on locally generated ICMP echo replies
// (spec §8 scenario E2: "TTL=64").
const echoReplyTTL = 64

// Loop is the single-threaded dispatch engine (spec §4.F and §5: "a single
// polling loop, no goroutines on the hot path"). It owns the receive
// cursor, the neighbor cache, the rule set and trie, the forwarding cache,
// and the per-port boot configuration, and implements RouterAPI for the
// external routing-protocol collaborator to call into.
type Loop struct {
	hw     hw.Hardware
	rx     *ring.Cursor
	ports  [hw.PortCount]hw.PortConfig
	nc     *neighbor.Cache
	rules  *routing.RuleSet
	trieB  *routing.Buf
	trie   *routing.Trie
	fwd    *forward.Table
	collab Collaborator
}

// NewLoop constructs a dispatch loop bound to hardware h, with the given
// per-port boot configuration and external collaborator.
func NewLoop(h hw.Hardware, ports [hw.PortCount]hw.PortConfig, collab Collaborator) *Loop {
	buf := routing.NewBuf(MaxTrieNodes)
	l := &Loop{
		hw:     h,
		rx:     ring.NewReceiveCursor(h),
		ports:  ports,
		nc:     neighbor.New(h),
		rules:  routing.NewRuleSet(),
		trieB:  buf,
		trie:   routing.FromRules(buf, nil),
		fwd:    forward.NewTable(),
		collab: collab,
	}
	return l
}

// Init configures each port's IP and MAC via the command channel and seeds
// the routing trie with the default route plus one /24 per port (spec
// §4.F, "Initialization"). It must be called once before RunOnce/Run.
func (l *Loop) Init(defaultNext [4]byte) error {
	for i, p := range l.ports {
		ip := p.IP.To4()
		if ip == nil {
			continue
		}

		ipCmd := hw.Cmd{Op: hw.OpSetIP, Idx: uint8(i)}
		ipCmd.Data[0], ipCmd.Data[1], ipCmd.Data[2], ipCmd.Data[3] = ip[3], ip[2], ip[1], ip[0]
		if err := l.hw.SubmitCommand(ipCmd); err != nil {
			return err
		}

		macCmd := hw.Cmd{Op: hw.OpSetMAC, Idx: uint8(i)}
		for j := 0; j < 6; j++ {
			macCmd.Data[j] = p.MAC[5-j]
		}
		if err := l.hw.SubmitCommand(macCmd); err != nil {
			return err
		}

		l.rules.Update(true, routing.Rule{
			Prefix:  [4]byte{ip[0], ip[1], ip[2], 0},
			Next:    [4]byte{ip[0], ip[1], ip[2], ip[3]},
			Len:     24,
			Metric:  0,
			IfIndex: uint8(i),
		})
	}

	l.rules.Update(true, routing.Rule{Prefix: [4]byte{}, Next: defaultNext, Len: 0, Metric: 255})

	l.trie = routing.FromRules(l.trieB, l.rules.Rules())
	l.rules.ClearDirty()
	return nil
}

// RunOnce polls the receive cursor once and dispatches the cell if it is
// not Vacant, rebuilding the trie first if the rule set has changed since
// the last rebuild (spec §5: "the loop rebuilds the trie from the rule set
// whenever rule_updated is set, before processing the next cell").
func (l *Loop) RunOnce() {
	if l.rules.Dirty() {
		l.trie = routing.FromRules(l.trieB, l.rules.Rules())
		l.rules.ClearDirty()
	}

	switch l.rx.Probe() {
	case hw.StateIncoming:
		l.dispatchIncoming()
	case hw.StateForwardMiss:
		l.dispatchForwardMiss()
	case hw.StateARPMiss:
		l.dispatchARPMiss()
	default:
		return
	}
}

// Run polls forever. Callers wanting graceful shutdown should instead loop
// calling RunOnce themselves against a context/signal check.
func (l *Loop) Run() {
	for {
		l.RunOnce()
	}
}

func (l *Loop) dispatchIncoming() {
	port := l.rx.Port()
	parsed := l.rx.Parse()

	switch parsed.Kind {
	case ring.KindARP:
		l.dispatchARP(port)
	case ring.KindIPv4:
		l.dispatchIPv4(port, parsed)
	default:
		l.diag(diagCodeUnknownEtherType)
		l.rx.Drop()
	}
}

func (l *Loop) dispatchARP(port uint8) {
	op := l.rx.ReadL3Uint16LE(6) // the ARP opcode sits 6 bytes into the ARP body
	spa := l.readARPField(14, 4)
	tpa := l.readARPField(24, 4)
	sha := l.readARPFieldMAC(8)

	switch op {
	case hw.ArpOpRequest:
		if int(port) >= len(l.ports) || !spaMatchesPort(tpa, l.ports[port]) {
			l.rx.Drop()
			return
		}
		l.learnNeighbor(spa, sha, port)
		l.rewriteARPReply(port, sha, spa, tpa)
		l.rx.Send()
	case hw.ArpOpReply:
		l.learnNeighbor(spa, sha, port)
		l.rx.Drop()
	default:
		l.rx.Drop()
	}
}

func spaMatchesPort(tpa [4]byte, p hw.PortConfig) bool {
	ip := p.IP.To4()
	if ip == nil {
		return false
	}
	return tpa[0] == ip[0] && tpa[1] == ip[1] && tpa[2] == ip[2] && tpa[3] == ip[3]
}

func (l *Loop) readARPField(off, n int) [4]byte {
	var out [4]byte
	copy(out[:], l.rx.ReadL3(off, n))
	return out
}

func (l *Loop) readARPFieldMAC(off int) [6]byte {
	var out [6]byte
	copy(out[:], l.rx.ReadL3(off, 6))
	return out
}

// learnNeighbor inserts an observed (IP, MAC, port) triple into the
// software neighbor cache (spec §4.F Incoming/ARP: "insert it"). Projecting
// an entry into the hardware round-robin table is the ARPMiss step's job
// (§4.C/§4.F), not ARP learning's — this never touches hardware.
func (l *Loop) learnNeighbor(ip [4]byte, mac [6]byte, port uint8) {
	if _, ok := l.nc.Lookup(ip); ok {
		return
	}
	l.nc.Put(ip, mac, port)
}

// rewriteARPReply turns the just-received request in place into a reply:
// flip the opcode, make the port's MAC and the requested IP the sender
// fields, make the requester's MAC and IP the target fields, and address the
// Ethernet header from the port's MAC to the requester's MAC, mirroring the
// original firmware's in-place ARP reply
// construction (spec §4.F, avoiding a second buffer cell for the reply).
func (l *Loop) rewriteARPReply(port uint8, requesterMAC [6]byte, requesterIP, targetIP [4]byte) {
	portMAC := l.portMAC(port)

	l.rx.WriteL3Uint16LE(6, hw.ArpOpReply)
	l.rx.WriteL3(8, portMAC[:])
	l.rx.WriteL3(14, targetIP[:])
	l.rx.WriteL3(18, requesterMAC[:])
	l.rx.WriteL3(24, requesterIP[:])

	l.rx.WriteDest(requesterMAC)
	l.rx.WriteSrc(portMAC)
}

func (l *Loop) portMAC(port uint8) [6]byte {
	var mac [6]byte
	if int(port) < len(l.ports) {
		copy(mac[:], l.ports[port].MAC)
	}
	return mac
}

func (l *Loop) dispatchIPv4(port uint8, parsed ring.Parsed) {
	header := l.rx.ReadL3(0, 20)
	proto := header[9]

	switch proto {
	case hw.IPProtoICMP:
		l.dispatchICMP(port, parsed, header)
	case hw.IPProtoUDP:
		l.dispatchUDP(port, parsed, header)
	default:
		// TCP, IGMP and anything else: out of scope, drop (spec §4.F).
		l.diag(diagCodeUnhandledProto)
		l.rx.Drop()
	}
}

func (l *Loop) dispatchICMP(port uint8, parsed ring.Parsed, header []byte) {
	icmpOff := parsed.PayloadOff - parsed.HeaderOff
	icmpType := l.rx.ReadL3(icmpOff, 1)[0]
	if icmpType != hw.ICMPTypeEchoRequest {
		l.rx.Drop()
		return
	}

	code := l.rx.ReadL3(icmpOff+1, 1)[0]
	id := l.rx.ReadL3Uint16LE(icmpOff + 4)
	seq := l.rx.ReadL3Uint16LE(icmpOff + 6)

	totalLen := int(binary.BigEndian.Uint16(header[2:4]))
	bodyLen := totalLen - 20 - 8
	var body []byte
	if bodyLen > 0 {
		body = l.rx.ReadL3(icmpOff+8, bodyLen)
	}

	l.rx.WriteL3(0, []byte{header[0], header[1]})
	l.rx.WriteL3(8, []byte{echoReplyTTL})
	srcIP := [4]byte{header[12], header[13], header[14], header[15]}
	dstIP := [4]byte{header[16], header[17], header[18], header[19]}
	l.rx.WriteL3(12, dstIP[:])
	l.rx.WriteL3(16, srcIP[:])

	newHeader := l.rx.ReadL3(0, 20)
	ipChk := checksumIPv4Header(newHeader)
	l.rx.WriteL3Uint16LE(10, ipChk)

	l.rx.WriteL3(icmpOff, []byte{hw.ICMPTypeEchoReply, code})
	icmpChk := checksumICMPEcho(hw.ICMPTypeEchoReply, code, id, seq, bodyWordsLE(body))
	l.rx.WriteL3Uint16LE(icmpOff+2, icmpChk)

	requesterMAC := l.rx.Src()
	portMAC := l.portMAC(port)
	l.rx.WriteDest(requesterMAC)
	l.rx.WriteSrc(portMAC)

	l.rx.Send()
}

func (l *Loop) dispatchUDP(port uint8, parsed ring.Parsed, header []byte) {
	totalLen := int(binary.BigEndian.Uint16(header[2:4]))
	payloadOff := parsed.PayloadOff - parsed.HeaderOff
	payloadLen := totalLen - 20
	if payloadLen < 0 {
		l.rx.Drop()
		return
	}
	payload := make([]byte, payloadLen)
	copy(payload, l.rx.ReadL3(payloadOff, payloadLen))
	srcMAC := l.rx.Src()

	l.rx.Drop()

	if l.collab != nil {
		l.collab.ReceiveIPPacket(payload, srcMAC, port)
	}
}

func (l *Loop) dispatchForwardMiss() {
	header := l.rx.ReadL3(0, 20)
	dst := [4]byte{header[16], header[17], header[18], header[19]}

	// A lookup miss here is unreachable in a correctly configured router:
	// the boot-time default 0.0.0.0/0 rule always matches (spec §7).
	next, ok := l.trie.Lookup(dst)
	if !ok {
		l.fatal(diagCodeRoutingMiss)
	}

	fwdKey := forward.Key{dst[3], dst[2], dst[1], dst[0]}
	fwdVal := forward.Value{next[3], next[2], next[1], next[0]}
	if !l.fwd.Insert(fwdKey, fwdVal, false) {
		l.diag(diagCodeCuckooInsertFailed)
	}

	l.rx.Drop()
}

// dispatchARPMiss resolves the unknown next hop for the frame's destination
// IP (spec §4.F "ARPMiss"). The neighbor cache is always consulted by the
// packet's own L3 destination; if the forwarding cache (installed by
// dispatchForwardMiss) names a different LPM next-hop for that destination,
// resolution substitutes the next-hop in its place. Either way a
// neighbor-cache miss broadcasts an ARP request for whichever IP resolution
// landed on, and never silently drops without broadcasting.
func (l *Loop) dispatchARPMiss() {
	header := l.rx.ReadL3(0, 20)
	dst := [4]byte{header[16], header[17], header[18], header[19]}

	resolve := dst
	fwdKey := forward.Key{dst[3], dst[2], dst[1], dst[0]}
	if next, ok := l.fwd.Lookup(fwdKey); ok {
		resolve = [4]byte{next[3], next[2], next[1], next[0]}
	}

	if idx, ok := l.nc.Lookup(resolve); ok {
		ent := l.nc.Get(idx)
		if err := l.nc.WriteHardware(idx); err != nil {
			l.diag(diagCodeNeighborProjectFailed)
		}
		portMAC := l.portMAC(ent.Port)
		l.rx.WriteDest(ent.MAC)
		l.rx.WriteSrc(portMAC)
		l.rx.WritePort(ent.Port)
		l.rx.Send()
		return
	}

	l.broadcastARPRequest(resolve)
	l.rx.Drop()
}

// broadcastARPRequest asks ports 1..4 (the LAN-facing ports) to resolve
// target, writing the same ARP request shape onto the fixed send cell for
// each port in turn (spec §4.F: "ARPMiss with no cache entry broadcasts an
// ARP request on every LAN port").
func (l *Loop) broadcastARPRequest(target [4]byte) {
	send := ring.SendCursor(l.hw)

	for port := 1; port < hw.PortCount; port++ {
		portMAC := l.portMAC(uint8(port))
		portIP := l.ports[port].IP.To4()
		if portIP == nil {
			continue
		}

		send.WriteDest([6]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF})
		send.WriteSrc(portMAC)
		send.WriteEthType(hw.EtherTypeARP)
		send.WritePort(uint8(port))

		send.WriteL3Uint16LE(0, hw.ArpHTypeEth)
		send.WriteL3Uint16LE(2, hw.ArpProtoIPv4)
		send.WriteL3(4, []byte{hw.ArpHWLen, hw.ArpProtoLen})
		send.WriteL3Uint16LE(6, hw.ArpOpRequest)
		send.WriteL3(8, portMAC[:])
		send.WriteL3(14, []byte{portIP[0], portIP[1], portIP[2], portIP[3]})
		send.WriteL3(18, []byte{0, 0, 0, 0, 0, 0})
		send.WriteL3(24, target[:])

		send.WritePayloadLen(28)
		send.Send()
	}
}

// UpdateRule implements RouterAPI.
func (l *Loop) UpdateRule(insert bool, r routing.Rule) bool {
	return l.rules.Update(insert, r)
}

// ArpGetMac implements RouterAPI.
func (l *Loop) ArpGetMac(ifIndex uint8, ip [4]byte) (mac [6]byte, ok bool) {
	idx, found := l.nc.Lookup(ip)
	if !found {
		return mac, false
	}
	ent := l.nc.Get(idx)
	if ent.Port != ifIndex {
		return mac, false
	}
	return ent.MAC, true
}

// SendIPPacket implements RouterAPI.
func (l *Loop) SendIPPacket(buf []byte, ifIndex uint8, dstMac [6]byte) error {
	send := ring.SendCursor(l.hw)
	portMAC := l.portMAC(ifIndex)

	send.WriteDest(dstMac)
	send.WriteSrc(portMAC)
	send.WriteEthType(hw.EtherTypeIPv4)
	send.WritePort(ifIndex)
	send.WriteL3(0, buf)
	send.WritePayloadLen(uint16(len(buf)))
	send.Send()
	return nil
}
