package legalspeeds

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// errUnknownRoadType Filter references a road type name that is not (yet)
// defined. The loader retries such filters once more definitions resolve.
var errUnknownRoadType = errors.New("unknown road type reference")

// ParseFilter Parses a road-type filter expression from the rule data into
// a predicate. Clauses are joined by "and":
//
//	highway=motorway             exact value
//	surface~paved|asphalt        value in set
//	oneway                       tag present
//	!maxspeed                    tag absent
//	access!=no                   negated exact value
//	lanes>=2  lanes<3            integer bounds
//	urban / rural                surrounding derived from lit/zone tags
//	{rural road}                 inline another road type's clauses
//
// Values of highway= clauses naming a known road class become road class
// clauses, everything else stays a plain string comparison. Parse failures
// are loader-time errors: nothing here is evaluated per query.
func ParseFilter(expression string, roadTypes map[string]Predicate) (Predicate, error) {
	var predicate Predicate
	for _, raw := range strings.Split(expression, " and ") {
		token := strings.TrimSpace(raw)
		if token == "" {
			return Predicate{}, errors.Errorf("empty clause in filter '%s'", expression)
		}
		if strings.HasPrefix(token, "{") && strings.HasSuffix(token, "}") {
			name := strings.TrimSpace(token[1 : len(token)-1])
			referenced, ok := roadTypes[name]
			if !ok {
				return Predicate{}, errors.Wrapf(errUnknownRoadType, "'%s' in filter '%s'", name, expression)
			}
			predicate.Clauses = append(predicate.Clauses, referenced.Clauses...)
			continue
		}
		clause, err := parseClause(token)
		if err != nil {
			return Predicate{}, errors.Wrapf(err, "filter '%s'", expression)
		}
		predicate.Clauses = append(predicate.Clauses, clause)
	}
	return predicate, nil
}

func parseClause(token string) (Clause, error) {
	switch token {
	case "urban":
		return ClauseEnvironment(ENVIRONMENT_URBAN), nil
	case "rural":
		return ClauseEnvironment(ENVIRONMENT_RURAL), nil
	}
	if strings.HasPrefix(token, "!") {
		key := strings.TrimSpace(token[1:])
		if key == "" {
			return Clause{}, errors.Errorf("absence clause without tag key: '%s'", token)
		}
		return ClauseAbsent(key), nil
	}
	// Multi-character operators first, they contain the single-character ones.
	for _, operator := range [...]string{"!=", ">=", "<=", "~", "=", ">", "<"} {
		idx := strings.Index(token, operator)
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(token[:idx])
		value := strings.TrimSpace(token[idx+len(operator):])
		if key == "" || value == "" {
			return Clause{}, errors.Errorf("incomplete clause: '%s'", token)
		}
		switch operator {
		case "=":
			if key == "highway" {
				if roadClass := getRoadClass(value); roadClass != ROAD_UNDEFINED {
					return ClauseRoadClass(roadClass), nil
				}
			}
			return ClauseEquals(key, value), nil
		case "!=":
			return ClauseNot(ClauseEquals(key, value)), nil
		case "~":
			values := strings.Split(value, "|")
			for i := range values {
				values[i] = strings.TrimSpace(values[i])
			}
			return ClauseInSet(key, values...), nil
		default:
			bound, err := strconv.Atoi(value)
			if err != nil {
				return Clause{}, errors.Wrapf(err, "numeric bound in clause '%s'", token)
			}
			if bound < 1 {
				return Clause{}, errors.Errorf("numeric bound out of range in clause '%s'", token)
			}
			switch operator {
			case ">=":
				return ClauseRange(key, bound, 0), nil
			case "<=":
				return ClauseRange(key, 0, bound), nil
			case ">":
				return ClauseRange(key, bound+1, 0), nil
			default: // "<"
				if bound < 2 {
					return Clause{}, errors.Errorf("numeric bound out of range in clause '%s'", token)
				}
				return ClauseRange(key, 0, bound-1), nil
			}
		}
	}
	return ClausePresent(token), nil
}
