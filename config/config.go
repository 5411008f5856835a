// Package config loads the firmware's boot-time configuration: per-port
// IP/MAC assignments and the initial rule set, in the same JSON-file-plus-
// flag idiom the teacher's examples/socks5 uses for its proxy settings.
package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"

	"github.com/meow-chip/RouterSoftware/hw"
	"github.com/meow-chip/RouterSoftware/routing"
)

// Port is one port's boot-time JSON configuration.
type Port struct {
	IP  string `json:"ip"`
	MAC string `json:"mac"`
}

// Rule is one routing rule's boot-time JSON configuration.
type Rule struct {
	Prefix  string `json:"prefix"`
	Len     uint8  `json:"len"`
	Next    string `json:"next"`
	Metric  uint8  `json:"metric"`
	IfIndex uint8  `json:"ifIndex"`
}

// Config is the top-level shape of the firmware's config.json.
type Config struct {
	DevicePath  string `json:"devicePath"`
	DefaultNext string `json:"defaultNext"`
	Ports       []Port `json:"ports"`
	Rules       []Rule `json:"rules"`
}

// Load opens path and decodes it as a Config, the same
// os.Open+json.NewDecoder pattern the teacher's socks5 example uses to
// read its proxy settings.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	var c Config
	if err := json.NewDecoder(f).Decode(&c); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return &c, nil
}

// Validate checks shape constraints Load cannot express structurally: the
// right number of ports, parseable addresses, and rules within bounds.
func (c *Config) Validate() error {
	if len(c.Ports) != hw.PortCount {
		return fmt.Errorf("config: expected %d ports, got %d", hw.PortCount, len(c.Ports))
	}
	for i, p := range c.Ports {
		if net.ParseIP(p.IP) == nil {
			return fmt.Errorf("config: port %d: invalid ip %q", i, p.IP)
		}
		if _, err := net.ParseMAC(p.MAC); err != nil {
			return fmt.Errorf("config: port %d: invalid mac %q: %w", i, p.MAC, err)
		}
	}
	if len(c.Rules) > routing.MaxRules {
		return fmt.Errorf("config: %d rules exceeds maximum %d", len(c.Rules), routing.MaxRules)
	}
	for i, r := range c.Rules {
		if net.ParseIP(r.Prefix) == nil {
			return fmt.Errorf("config: rule %d: invalid prefix %q", i, r.Prefix)
		}
		if net.ParseIP(r.Next) == nil {
			return fmt.Errorf("config: rule %d: invalid next-hop %q", i, r.Next)
		}
		if r.Len > 32 {
			return fmt.Errorf("config: rule %d: len %d exceeds 32", i, r.Len)
		}
	}
	return nil
}

// PortConfigs converts the JSON port list into the [hw.PortCount]hw.PortConfig
// array the dispatch loop is constructed with.
func (c *Config) PortConfigs() ([hw.PortCount]hw.PortConfig, error) {
	var out [hw.PortCount]hw.PortConfig
	for i, p := range c.Ports {
		ip := net.ParseIP(p.IP).To4()
		if ip == nil {
			return out, fmt.Errorf("config: port %d: %q is not an IPv4 address", i, p.IP)
		}
		mac, err := net.ParseMAC(p.MAC)
		if err != nil {
			return out, fmt.Errorf("config: port %d: %w", i, err)
		}
		out[i] = hw.PortConfig{IP: ip, MAC: mac}
	}
	return out, nil
}

// RoutingRules converts the JSON rule list into routing.Rule values,
// reading each address as a 4-byte big-endian IPv4 value.
func (c *Config) RoutingRules() ([]routing.Rule, error) {
	out := make([]routing.Rule, 0, len(c.Rules))
	for i, r := range c.Rules {
		prefix := net.ParseIP(r.Prefix).To4()
		next := net.ParseIP(r.Next).To4()
		if prefix == nil || next == nil {
			return nil, fmt.Errorf("config: rule %d: addresses must be IPv4", i)
		}
		out = append(out, routing.Rule{
			Prefix:  [4]byte{prefix[0], prefix[1], prefix[2], prefix[3]},
			Next:    [4]byte{next[0], next[1], next[2], next[3]},
			Len:     r.Len,
			Metric:  r.Metric,
			IfIndex: r.IfIndex,
		})
	}
	return out, nil
}

// DefaultNextHop parses DefaultNext, falling back to the broadcast address
// if unset, the stock default-route next-hop this firmware boots with.
func (c *Config) DefaultNextHop() [4]byte {
	if c.DefaultNext == "" {
		return [4]byte{255, 255, 255, 255}
	}
	ip := net.ParseIP(c.DefaultNext).To4()
	if ip == nil {
		return [4]byte{255, 255, 255, 255}
	}
	return [4]byte{ip[0], ip[1], ip[2], ip[3]}
}
