//go:build linux

// Command meowrouterd runs the MeowRouter dispatch loop against either the
// real memory-mapped hardware or an in-process simulated NIC, the host-side
// analogue of the original firmware's boot-then-spin-forever main loop.
package main

import (
	"flag"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/meow-chip/RouterSoftware/config"
	"github.com/meow-chip/RouterSoftware/dispatch"
	"github.com/meow-chip/RouterSoftware/hw"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the JSON port/rule configuration file")
	hwBackend := flag.String("hw", "sim", "hardware backend: \"sim\" (in-process) or \"mmap\" (real MMIO via -device)")
	devicePath := flag.String("device", "/dev/mem", "backing device file for the mmap hardware backend")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("meowrouterd: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("meowrouterd: %v", err)
	}

	ports, err := cfg.PortConfigs()
	if err != nil {
		log.Fatalf("meowrouterd: %v", err)
	}
	rules, err := cfg.RoutingRules()
	if err != nil {
		log.Fatalf("meowrouterd: %v", err)
	}

	var backend hw.Hardware
	switch *hwBackend {
	case "sim":
		backend = hw.NewSim()
		log.Println("meowrouterd: running against the simulated NIC backend")
	case "mmap":
		m, err := hw.OpenMMap(*devicePath)
		if err != nil {
			log.Fatalf("meowrouterd: %v", err)
		}
		defer m.Close()
		backend = m
		log.Printf("meowrouterd: running against mmap backend at %s", *devicePath)
	default:
		log.Fatalf("meowrouterd: unknown -hw backend %q (want \"sim\" or \"mmap\")", *hwBackend)
	}

	collab := &logCollaborator{}
	loop := dispatch.NewLoop(backend, ports, collab)

	if err := loop.Init(cfg.DefaultNextHop()); err != nil {
		log.Fatalf("meowrouterd: init: %v", err)
	}
	for _, r := range rules {
		if !loop.UpdateRule(true, r) {
			log.Printf("meowrouterd: rule %s/%d rejected (table full or a rule with an equal or lower metric already installed)", net.IP(r.Prefix[:]), r.Len)
		}
	}

	log.Println("meowrouterd: dispatch loop starting")
	go loop.Run()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, os.Interrupt, syscall.SIGTERM)
	<-osSignals
	log.Println("meowrouterd: received shutdown signal, exiting")
}

// logCollaborator is the stock stand-in for the external RIP-like routing
// protocol: it logs every UDP payload the dispatch loop hands off instead of
// acting on it. A production deployment supplies its own
// dispatch.Collaborator wired to the real routing protocol.
type logCollaborator struct{}

func (c *logCollaborator) ReceiveIPPacket(payload []byte, srcMac [6]byte, ifIndex uint8) {
	log.Printf("meowrouterd: received %d-byte routing-protocol datagram from %s on port %d", len(payload), net.HardwareAddr(srcMac[:]), ifIndex)
}
