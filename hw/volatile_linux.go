//go:build linux

package hw

import (
	"sync/atomic"
	"unsafe"
)

// volatileReadByte and volatileWriteByte give mmap_linux.go the same
// guarantee the original firmware's core::ptr::{read,write}_volatile calls
// made: the access must not be cached or reordered by the compiler past a
// state-byte access (spec §5). A single byte load/store into mapped memory
// cannot tear, so a plain dereference through unsafe.Pointer is sufficient
// and is what device-register access looks like elsewhere in the corpus
// (e.g. the io_uring mmap ring in the momentics-hioload-ws example) —
// there is no third-party "volatile" library in this corpus to reach for.
func volatileReadByte(p *byte) byte {
	return *(*byte)(unsafe.Pointer(p))
}

func volatileWriteByte(p *byte, v byte) {
	*(*byte)(unsafe.Pointer(p)) = v
}

// volatileWriteUint32 backs the command-register submission protocol
// (spec §4.B), which is defined in terms of two 32-bit writes. The command
// register is 4-byte aligned by construction (CmdBase is page-aligned and
// the two writes land at +0 and +4), so an atomic store both documents the
// volatile intent and gives the two halves well-defined ordering.
func volatileWriteUint32(p *byte, v uint32) {
	atomic.StoreUint32((*uint32)(unsafe.Pointer(p)), v)
}
