package dispatch

// Diagnostic byte codes emitted over the UART for the non-fatal failure
// modes spec §7 calls out ("dropped silently, a diagnostic byte is
// emitted"). Values are firmware-internal convention, not a wire contract.
const (
	diagCodeUnknownEtherType     byte = 0xE0
	diagCodeUnhandledProto       byte = 0xE1
	diagCodeCuckooInsertFailed   byte = 0xE2
	diagCodeNeighborProjectFailed byte = 0xE3
	diagCodeRoutingMiss          byte = 0xFF
)

// diag emits one diagnostic byte without interrupting dispatch.
func (l *Loop) diag(code byte) {
	l.hw.WriteUART(code)
}

// fatal emits code on the UART forever, modeling spec §7's "the device
// halts in a diagnostic loop" for the one failure the design treats as
// unreachable in a correctly configured router: a routing lookup miss
// despite the mandatory default rule.
func (l *Loop) fatal(code byte) {
	for {
		l.hw.WriteUART(code)
	}
}
