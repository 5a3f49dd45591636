package legalspeeds

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type ClauseKind uint16

const (
	CLAUSE_EQUALS = ClauseKind(iota + 1)
	CLAUSE_IN_SET
	CLAUSE_PRESENT
	CLAUSE_ABSENT
	CLAUSE_RANGE
	CLAUSE_NOT
	CLAUSE_ROAD_CLASS
	CLAUSE_ENVIRONMENT
)

func (iotaIdx ClauseKind) String() string {
	return [...]string{"equals", "in_set", "present", "absent", "range", "not", "road_class", "environment"}[iotaIdx-1]
}

// Clause Single condition over a tag set. The set of kinds is closed: the
// evaluator is one exhaustive switch and an unknown kind never matches.
type Clause struct {
	Kind        ClauseKind
	Key         string      // tag key for EQUALS / IN_SET / PRESENT / ABSENT / RANGE
	Value       string      // expected value for EQUALS
	Values      []string    // accepted values for IN_SET
	Min         int         // lower bound for RANGE, 0 = unbounded
	Max         int         // upper bound for RANGE, 0 = unbounded
	Inner       *Clause     // negated clause for NOT
	RoadClass   RoadClass   // expected class for ROAD_CLASS
	Environment Environment // expected surrounding for ENVIRONMENT
}

// Predicate Conjunction of clauses. Empty predicate matches every tag set
// (the catch-all default of a jurisdiction).
type Predicate struct {
	Clauses []Clause
}

// ClauseEquals tag has exactly the given value
func ClauseEquals(key, value string) Clause {
	return Clause{Kind: CLAUSE_EQUALS, Key: key, Value: value}
}

// ClauseInSet tag value is one of the given values
func ClauseInSet(key string, values ...string) Clause {
	return Clause{Kind: CLAUSE_IN_SET, Key: key, Values: values}
}

// ClausePresent tag key is present with any value
func ClausePresent(key string) Clause {
	return Clause{Kind: CLAUSE_PRESENT, Key: key}
}

// ClauseAbsent tag key is not present
func ClauseAbsent(key string) Clause {
	return Clause{Kind: CLAUSE_ABSENT, Key: key}
}

// ClauseRange tag value parses as an integer within [min, max]; a zero
// bound means unbounded on that side
func ClauseRange(key string, min, max int) Clause {
	return Clause{Kind: CLAUSE_RANGE, Key: key, Min: min, Max: max}
}

// ClauseNot negation of the inner clause
func ClauseNot(inner Clause) Clause {
	return Clause{Kind: CLAUSE_NOT, Inner: &inner}
}

// ClauseRoadClass road class derived from the highway tag equals the given one
func ClauseRoadClass(roadClass RoadClass) Clause {
	return Clause{Kind: CLAUSE_ROAD_CLASS, RoadClass: roadClass}
}

// ClauseEnvironment urban/rural surrounding derived from lit/zone tags
func ClauseEnvironment(environment Environment) Clause {
	return Clause{Kind: CLAUSE_ENVIRONMENT, Environment: environment}
}

// NewPredicate Conjunction of the given clauses
func NewPredicate(clauses ...Clause) Predicate {
	return Predicate{Clauses: clauses}
}

// Specificity Number of conjunctive clauses. More clauses mean a narrower
// rule. Does not depend on any tag set, so tables can rank rules at build
// time, before any query arrives.
func (predicate Predicate) Specificity() int {
	return len(predicate.Clauses)
}

// Matches Evaluates the predicate against a tag set. Pure function of the
// tags: never consults location, never fails. A missing tag fails every
// value clause but satisfies an absence clause; a malformed numeric value
// fails only the range clause looking at it.
func (predicate Predicate) Matches(tags TagSet) bool {
	for i := range predicate.Clauses {
		if !predicate.Clauses[i].matches(tags) {
			return false
		}
	}
	return true
}

func (clause *Clause) matches(tags TagSet) bool {
	switch clause.Kind {
	case CLAUSE_EQUALS:
		value, ok := tags.Get(clause.Key)
		return ok && value == clause.Value
	case CLAUSE_IN_SET:
		value, ok := tags.Get(clause.Key)
		if !ok {
			return false
		}
		for _, candidate := range clause.Values {
			if value == candidate {
				return true
			}
		}
		return false
	case CLAUSE_PRESENT:
		return tags.Has(clause.Key)
	case CLAUSE_ABSENT:
		return !tags.Has(clause.Key)
	case CLAUSE_RANGE:
		value, ok := tags.Get(clause.Key)
		if !ok {
			return false
		}
		number, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return false
		}
		if clause.Min > 0 && number < clause.Min {
			return false
		}
		if clause.Max > 0 && number > clause.Max {
			return false
		}
		return true
	case CLAUSE_NOT:
		return clause.Inner != nil && !clause.Inner.matches(tags)
	case CLAUSE_ROAD_CLASS:
		return clause.RoadClass != ROAD_UNDEFINED && getRoadClass(tags.Find("highway")) == clause.RoadClass
	case CLAUSE_ENVIRONMENT:
		return clause.Environment != ENVIRONMENT_UNDEFINED && deriveEnvironment(tags) == clause.Environment
	}
	return false
}

// String Canonical form of the predicate. Clause order is normalized, so
// two predicates with the same clauses in different order render the same.
// The table builder relies on this to detect duplicate rules.
func (predicate Predicate) String() string {
	if len(predicate.Clauses) == 0 {
		return "(any)"
	}
	parts := make([]string, len(predicate.Clauses))
	for i := range predicate.Clauses {
		parts[i] = predicate.Clauses[i].String()
	}
	sort.Strings(parts)
	return strings.Join(parts, " and ")
}

func (clause Clause) String() string {
	switch clause.Kind {
	case CLAUSE_EQUALS:
		return fmt.Sprintf("%s=%s", clause.Key, clause.Value)
	case CLAUSE_IN_SET:
		values := make([]string, len(clause.Values))
		copy(values, clause.Values)
		sort.Strings(values)
		return fmt.Sprintf("%s~%s", clause.Key, strings.Join(values, "|"))
	case CLAUSE_PRESENT:
		return clause.Key
	case CLAUSE_ABSENT:
		return "!" + clause.Key
	case CLAUSE_RANGE:
		switch {
		case clause.Min > 0 && clause.Max > 0:
			return fmt.Sprintf("%d<=%s<=%d", clause.Min, clause.Key, clause.Max)
		case clause.Min > 0:
			return fmt.Sprintf("%s>=%d", clause.Key, clause.Min)
		default:
			return fmt.Sprintf("%s<=%d", clause.Key, clause.Max)
		}
	case CLAUSE_NOT:
		if clause.Inner == nil {
			return "not()"
		}
		return fmt.Sprintf("not(%s)", clause.Inner.String())
	case CLAUSE_ROAD_CLASS:
		return fmt.Sprintf("highway=%s", clause.RoadClass)
	case CLAUSE_ENVIRONMENT:
		return clause.Environment.String()
	}
	return "unknown"
}
