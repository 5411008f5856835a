package routing

// MaxRules bounds the rule set (spec §3: "up to 8192 rules").
const MaxRules = 8192

// ruleKey identifies a rule by its (prefix, len) pair, the key update_rule
// keys conflict resolution on (spec §6).
type ruleKey struct {
	prefix [4]byte
	len    uint8
}

// RuleSet is the bounded rule table the external routing-protocol
// collaborator mutates through UpdateRule. It tracks a dirty flag so the
// dispatch loop knows when the trie must be rebuilt (spec §5, "a
// rule_updated flag is set by update_rule").
type RuleSet struct {
	rules []Rule
	dirty bool
}

// NewRuleSet constructs an empty rule set.
func NewRuleSet() *RuleSet {
	return &RuleSet{}
}

// Update inserts, updates or deletes a rule keyed by (r.Prefix, r.Len). On
// insert, if a rule with the same key already exists, the one with the
// lower Metric is kept (spec §6). Returns true if the rule set changed.
func (rs *RuleSet) Update(insert bool, r Rule) bool {
	key := ruleKey{r.Prefix, r.Len}

	idx := -1
	for i := range rs.rules {
		if (ruleKey{rs.rules[i].Prefix, rs.rules[i].Len}) == key {
			idx = i
			break
		}
	}

	if !insert {
		if idx < 0 {
			return false
		}
		rs.rules = append(rs.rules[:idx], rs.rules[idx+1:]...)
		rs.dirty = true
		return true
	}

	if idx >= 0 {
		if r.Metric >= rs.rules[idx].Metric {
			return false
		}
		rs.rules[idx] = r
		rs.dirty = true
		return true
	}

	if len(rs.rules) >= MaxRules {
		return false
	}
	rs.rules = append(rs.rules, r)
	rs.dirty = true
	return true
}

// Rules returns a copy of the current rule slice, sorted by ascending Len
// as FromRules requires.
func (rs *RuleSet) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	sortByLen(out)
	return out
}

func sortByLen(rules []Rule) {
	for i := 1; i < len(rules); i++ {
		for j := i; j > 0 && rules[j-1].Len > rules[j].Len; j-- {
			rules[j-1], rules[j] = rules[j], rules[j-1]
		}
	}
}

// Dirty reports whether the rule set has changed since the last
// ClearDirty call.
func (rs *RuleSet) Dirty() bool { return rs.dirty }

// ClearDirty resets the dirty flag, called after the trie has been rebuilt.
func (rs *RuleSet) ClearDirty() { rs.dirty = false }
