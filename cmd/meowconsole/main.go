// Command meowconsole is a minimal serial console client for the
// firmware's UART diagnostic stream (spec §7): every byte meowrouterd's
// dispatch loop writes with Loop.diag/Loop.fatal arrives here unmodified.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"golang.org/x/term"
)

func main() {
	devicePath := flag.String("device", "/dev/ttyUSB0", "serial device carrying the firmware's UART diagnostic stream")
	flag.Parse()

	dev, err := os.OpenFile(*devicePath, os.O_RDWR, 0)
	if err != nil {
		log.Fatalf("meowconsole: open %s: %v", *devicePath, err)
	}
	defer dev.Close()

	stdinFd := int(os.Stdin.Fd())
	if term.IsTerminal(stdinFd) {
		oldState, err := term.MakeRaw(stdinFd)
		if err != nil {
			log.Fatalf("meowconsole: make raw: %v", err)
		}
		defer term.Restore(stdinFd, oldState)
	}

	fmt.Fprintf(os.Stderr, "meowconsole: attached to %s, diagnostic codes follow (ctrl-] to quit)\r\n", *devicePath)

	done := make(chan struct{})
	go readDiagnosticStream(dev, done)

	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		if buf[0] == 0x1D { // ctrl-]
			return
		}
		if _, err := dev.Write(buf[:n]); err != nil {
			return
		}
	}
}

// readDiagnosticStream prints each byte read from dev as a hex diagnostic
// code, one per line, the host-side view of what the firmware's UART
// would show on a real serial terminal.
func readDiagnosticStream(r io.Reader, done chan<- struct{}) {
	defer close(done)
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		fmt.Fprintf(os.Stdout, "diag: 0x%02X\r\n", buf[0])
	}
}
