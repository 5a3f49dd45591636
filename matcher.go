package legalspeeds

// Matcher Rule-matching engine. Holds a reference to one immutable
// RuleTable; a single Matcher may serve any number of concurrent Infer
// calls since a query is a pure computation over its inputs.
type Matcher struct {
	table *RuleTable
}

// NewMatcher Creates matching engine over a built rule table
func NewMatcher(table *RuleTable) *Matcher {
	return &Matcher{table: table}
}

// Infer Returns the legally applicable default speed limit for a road
// segment described by its tags at the given location.
//
// The jurisdiction chain (subdivision, country, global) is walked most
// specific first. Inside a scope, rules are tried in descending specificity
// and the first match wins; a scope with a winner ends the walk, so a
// subdivision rule beats a country rule regardless of how specific either
// is. When no scope yields a match the zero MatchResult (the "no legal
// default" sentinel) comes back with no overrides.
//
// Per-vehicle overrides are resolved by a separate sub-search over the same
// chain: for each vehicle category the most specific matching rule that
// actually declares a limit for it contributes the entry. A country-wide
// hgv limit therefore survives even when a subdivision rule overrode only
// the general value.
//
// Infer never fails: malformed tag values degrade to non-matching clauses
// and an unknown location degrades to the sentinel.
func (matcher *Matcher) Infer(tags TagSet, location Location) MatchResult {
	chain := resolveChain(location, matcher.table)
	winner := matcher.findGeneral(chain, tags)
	if winner == nil {
		return MatchResult{}
	}
	result := MatchResult{
		General:  winner.General,
		RoadType: winner.Name,
	}
	for _, vehicle := range knownVehicleTypes {
		if speed, ok := matcher.findOverride(chain, tags, vehicle); ok {
			if result.Overrides == nil {
				result.Overrides = make(map[VehicleType]SpeedValue)
			}
			result.Overrides[vehicle] = speed
		}
	}
	return result
}

// findGeneral First scope in the chain containing a matching rule with a
// general value decides the query. Rules that only carry vehicle overrides
// can never supply the general limit and are passed over here.
func (matcher *Matcher) findGeneral(chain []Scope, tags TagSet) *Rule {
	for _, scope := range chain {
		rules := matcher.table.Lookup(scope)
		for i := range rules {
			if !rules[i].General.Defined() {
				continue
			}
			if rules[i].Predicate.Matches(tags) {
				return &rules[i]
			}
		}
	}
	return nil
}

func (matcher *Matcher) findOverride(chain []Scope, tags TagSet, vehicle VehicleType) (SpeedValue, bool) {
	for _, scope := range chain {
		rules := matcher.table.Lookup(scope)
		for i := range rules {
			speed, ok := rules[i].Override(vehicle)
			if !ok {
				continue
			}
			if rules[i].Predicate.Matches(tags) {
				return speed, true
			}
		}
	}
	return SpeedValue{}, false
}
