package legalspeeds

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrDataIntegrity Two rules in the same jurisdiction scope carry the same
// predicate, so no deterministic ordering policy could ever tell them
// apart. Raised only by BuildRuleTable; fatal to table construction.
var ErrDataIntegrity = errors.New("ambiguous rules in jurisdiction scope")

// RuleTable Immutable rule collection grouped by jurisdiction scope. Rules
// inside a scope are pre-sorted by descending specificity with declaration
// order as the stable tie break, so the matcher can stop at the first hit.
// Built once, never mutated afterwards: concurrent readers need no locking.
type RuleTable struct {
	scopes map[Scope][]Rule
	size   int
}

// BuildRuleTable Constructs the table from loader-supplied rules. The input
// slice keeps its meaning after the call (rules are copied into the table).
// Fails with ErrDataIntegrity when two rules of one scope share a predicate;
// construction is all-or-nothing, there is no partial table to recover.
func BuildRuleTable(rules []Rule) (*RuleTable, error) {
	scopes := make(map[Scope][]Rule)
	seen := make(map[Scope]map[string]int)
	for i := range rules {
		rule := rules[i]
		canonical := rule.Predicate.String()
		if _, ok := seen[rule.Scope]; !ok {
			seen[rule.Scope] = make(map[string]int)
		}
		if prev, ok := seen[rule.Scope][canonical]; ok {
			return nil, errors.Wrapf(ErrDataIntegrity, "scope '%s': rules #%d and #%d share predicate '%s'", rule.Scope, prev, i, canonical)
		}
		seen[rule.Scope][canonical] = i
		scopes[rule.Scope] = append(scopes[rule.Scope], rule)
	}
	for scope := range scopes {
		scoped := scopes[scope]
		// Stable: equal specificity keeps declaration order, first-declared wins.
		sort.SliceStable(scoped, func(i, j int) bool {
			return scoped[i].Predicate.Specificity() > scoped[j].Predicate.Specificity()
		})
	}
	size := len(rules)
	return &RuleTable{scopes: scopes, size: size}, nil
}

// Lookup Returns rules registered for the exact given scope, ordered by
// descending specificity. The returned slice is shared table state: callers
// must treat it as read-only.
func (table *RuleTable) Lookup(scope Scope) []Rule {
	return table.scopes[scope]
}

// Len Total number of rules in the table
func (table *RuleTable) Len() int {
	return table.size
}

func (table *RuleTable) hasScope(scope Scope) bool {
	return len(table.scopes[scope]) > 0
}
