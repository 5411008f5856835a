package routing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meow-chip/RouterSoftware/routing"
)

func TestRuleSetInsertUpdateDelete(t *testing.T) {
	rs := routing.NewRuleSet()

	r := routing.Rule{Prefix: [4]byte{10, 0, 0, 0}, Next: [4]byte{10, 0, 0, 99}, Len: 16, Metric: 10}
	require.True(t, rs.Update(true, r))
	assert.True(t, rs.Dirty())
	rs.ClearDirty()

	// A higher-metric insert on the same key is rejected.
	worse := r
	worse.Metric = 20
	worse.Next = [4]byte{10, 0, 0, 100}
	assert.False(t, rs.Update(true, worse))
	assert.False(t, rs.Dirty())

	// A lower-metric insert on the same key replaces it.
	better := r
	better.Metric = 5
	better.Next = [4]byte{10, 0, 0, 101}
	require.True(t, rs.Update(true, better))
	rules := rs.Rules()
	require.Len(t, rules, 1)
	assert.Equal(t, better.Next, rules[0].Next)

	require.True(t, rs.Update(false, r))
	assert.Empty(t, rs.Rules())
}

func TestRuleSetDeleteMissingReturnsFalse(t *testing.T) {
	rs := routing.NewRuleSet()
	assert.False(t, rs.Update(false, routing.Rule{Prefix: [4]byte{1, 2, 3, 4}, Len: 32}))
}

func TestRuleSetRulesSortedByAscendingLen(t *testing.T) {
	rs := routing.NewRuleSet()
	rs.Update(true, routing.Rule{Prefix: [4]byte{10, 0, 1, 254}, Next: [4]byte{0, 0, 0, 3}, Len: 31})
	rs.Update(true, routing.Rule{Prefix: [4]byte{0, 0, 0, 0}, Next: [4]byte{0, 0, 0, 1}, Len: 0})
	rs.Update(true, routing.Rule{Prefix: [4]byte{10, 0, 0, 0}, Next: [4]byte{0, 0, 0, 2}, Len: 16})

	rules := rs.Rules()
	require.Len(t, rules, 3)
	assert.Equal(t, uint8(0), rules[0].Len)
	assert.Equal(t, uint8(16), rules[1].Len)
	assert.Equal(t, uint8(31), rules[2].Len)
}
