package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meow-chip/RouterSoftware/config"
	"github.com/meow-chip/RouterSoftware/hw"
)

const sampleJSON = `{
	"devicePath": "/dev/mem",
	"defaultNext": "10.0.0.1",
	"ports": [
		{"ip": "0.0.0.0", "mac": "00:00:00:00:00:00"},
		{"ip": "10.0.0.1", "mac": "02:00:00:00:00:01"},
		{"ip": "10.0.1.1", "mac": "02:00:00:00:00:02"},
		{"ip": "10.0.2.1", "mac": "02:00:00:00:00:03"},
		{"ip": "10.0.3.1", "mac": "02:00:00:00:00:04"}
	],
	"rules": [
		{"prefix": "0.0.0.0", "len": 0, "next": "10.0.0.1", "metric": 255, "ifIndex": 1}
	]
}`

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0o644))
	return path
}

func TestLoadAndValidate(t *testing.T) {
	path := writeSample(t)
	c, err := config.Load(path)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	ports, err := c.PortConfigs()
	require.NoError(t, err)
	assert.Equal(t, "10.0.1.1", ports[2].IP.String())

	rules, err := c.RoutingRules()
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, uint8(0), rules[0].Len)
	assert.Equal(t, uint8(255), rules[0].Metric)

	assert.Equal(t, [4]byte{10, 0, 0, 1}, c.DefaultNextHop())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load("/nonexistent/config.json")
	assert.Error(t, err)
}

func TestValidateWrongPortCount(t *testing.T) {
	c := &config.Config{Ports: []config.Port{{IP: "10.0.0.1", MAC: "02:00:00:00:00:01"}}}
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected")
}

func TestValidateBadAddresses(t *testing.T) {
	ports := make([]config.Port, hw.PortCount)
	for i := range ports {
		ports[i] = config.Port{IP: "10.0.0.1", MAC: "02:00:00:00:00:01"}
	}
	ports[1].IP = "not-an-ip"
	c := &config.Config{Ports: ports}
	assert.Error(t, c.Validate())
}

func TestDefaultNextHopFallsBackToBroadcast(t *testing.T) {
	c := &config.Config{}
	assert.Equal(t, [4]byte{255, 255, 255, 255}, c.DefaultNextHop())
}
