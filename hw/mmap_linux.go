//go:build linux

package hw

import (
	"encoding/binary"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// MMap is the real hardware backend: it maps the buffer ring, command
// register and UART regions out of a backing device file (typically
// /dev/mem on the target, or a regular file standing in for it during
// bring-up) the same way the teacher's ndisapi.go opens the NDIS driver
// device node with windows.CreateFile before issuing DeviceIoControl calls.
// Here the Linux analogue of "open a device node, then talk to it" is
// "open a device node, then mmap the regions out of it".
type MMap struct {
	ring []byte
	cmd  []byte
	uart []byte

	ringFile *os.File
	cmdFile  *os.File
	uartFile *os.File
}

var _ Hardware = (*MMap)(nil)

// OpenMMap maps the three MMIO regions out of devicePath at the fixed
// offsets spec §6 defines (UARTBase, RingBase, CmdBase), using
// golang.org/x/sys/unix.Mmap with MAP_SHARED so writes are visible to
// whatever else (real hardware, or another process backing the same file
// in a bring-up rig) maps the same region.
func OpenMMap(devicePath string) (*MMap, error) {
	open := func(off int64, size int) ([]byte, *os.File, error) {
		f, err := os.OpenFile(devicePath, os.O_RDWR, 0)
		if err != nil {
			return nil, nil, fmt.Errorf("hw: open %s: %w", devicePath, err)
		}
		data, err := unix.Mmap(int(f.Fd()), off, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("hw: mmap %s at 0x%x: %w", devicePath, off, err)
		}
		return data, f, nil
	}

	ring, ringFile, err := open(RingBase, RingSize)
	if err != nil {
		return nil, err
	}
	cmd, cmdFile, err := open(CmdBase, CmdRange)
	if err != nil {
		unix.Munmap(ring)
		ringFile.Close()
		return nil, err
	}
	uart, uartFile, err := open(UARTBase, UARTRange)
	if err != nil {
		unix.Munmap(ring)
		ringFile.Close()
		unix.Munmap(cmd)
		cmdFile.Close()
		return nil, err
	}

	return &MMap{
		ring: ring, cmd: cmd, uart: uart,
		ringFile: ringFile, cmdFile: cmdFile, uartFile: uartFile,
	}, nil
}

// Close unmaps the regions and closes the backing file descriptors.
func (m *MMap) Close() error {
	unix.Munmap(m.ring)
	unix.Munmap(m.cmd)
	unix.Munmap(m.uart)
	m.ringFile.Close()
	m.cmdFile.Close()
	return m.uartFile.Close()
}

func (m *MMap) ReadByte(off int) byte {
	return volatileReadByte(&m.ring[off])
}

func (m *MMap) WriteByte(off int, v byte) {
	volatileWriteByte(&m.ring[off], v)
}

func (m *MMap) ReadBytes(off, n int) []byte {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = volatileReadByte(&m.ring[off+i])
	}
	return out
}

func (m *MMap) WriteBytes(off int, data []byte) {
	for i, b := range data {
		volatileWriteByte(&m.ring[off+i], b)
	}
}

func (m *MMap) ReadUint16LE(off int) uint16 {
	return binary.LittleEndian.Uint16(m.ReadBytes(off, 2))
}

func (m *MMap) WriteUint16LE(off int, v uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	m.WriteBytes(off, buf[:])
}

func (m *MMap) CellState(idx int) State {
	return State(m.ReadByte(StateOffset(idx)))
}

func (m *MMap) SetCellState(idx int, s State) {
	m.WriteByte(StateOffset(idx), byte(s))
}

// SubmitCommand implements the §4.B submission protocol: write 0 to the
// lower word to clear any previous command, write the upper 4 bytes, then
// write the lower 4 bytes — that last write latches the command.
func (m *MMap) SubmitCommand(c Cmd) error {
	var rec [8]byte
	rec[0] = byte(c.Op)
	rec[1] = c.Idx
	copy(rec[2:], c.Data[:])

	volatileWriteUint32(&m.cmd[0], 0)
	volatileWriteUint32(&m.cmd[4], binary.LittleEndian.Uint32(rec[4:8]))
	volatileWriteUint32(&m.cmd[0], binary.LittleEndian.Uint32(rec[0:4]))
	return nil
}

func (m *MMap) WriteUART(b byte) {
	for volatileReadByte(&m.uart[UARTStatusOffset])&UARTStatusFIFOEmpty == 0 {
	}
	volatileWriteByte(&m.uart[UARTDataOffset], b)
}
