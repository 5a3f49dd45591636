package legalspeeds

import "strings"

// Location Administrative position of the queried road segment. Used only
// to pick jurisdiction scopes, never matched against tags.
type Location struct {
	Country     string // ISO 3166-1 alpha-2, e.g. "DE"
	Subdivision string // ISO 3166-2, e.g. "DE-NI"; empty when unknown
}

// NewLocation Normalizes country and subdivision codes. The subdivision may
// be given bare ("NI") or fully qualified ("DE-NI"); both normalize to the
// qualified ISO 3166-2 form.
func NewLocation(country, subdivision string) Location {
	country = strings.ToUpper(strings.TrimSpace(country))
	subdivision = strings.ToUpper(strings.TrimSpace(subdivision))
	if subdivision != "" && country != "" && !strings.HasPrefix(subdivision, country+"-") {
		subdivision = country + "-" + subdivision
	}
	return Location{Country: country, Subdivision: subdivision}
}

// Scope Jurisdiction a rule belongs to. The zero value is the global
// fallback scope that applies when neither country nor subdivision rules
// exist for a location.
type Scope struct {
	Country     string
	Subdivision string
}

// GlobalScope Worldwide fallback scope
var GlobalScope = Scope{}

// CountryScope Scope covering a whole country
func CountryScope(country string) Scope {
	return Scope{Country: strings.ToUpper(strings.TrimSpace(country))}
}

// SubdivisionScope Scope covering one country subdivision
func SubdivisionScope(country, subdivision string) Scope {
	location := NewLocation(country, subdivision)
	return Scope{Country: location.Country, Subdivision: location.Subdivision}
}

// String Pretty printing for Scope
func (scope Scope) String() string {
	if scope.Subdivision != "" {
		return scope.Subdivision
	}
	if scope.Country != "" {
		return scope.Country
	}
	return "(global)"
}

// resolveChain Builds the ordered list of scopes to search for a location,
// most specific first: subdivision, then country, then the global fallback.
// Scopes with no rules registered at all are skipped; an empty match inside
// a scope that does have rules is the matcher's decision, not the chain's.
func resolveChain(location Location, table *RuleTable) []Scope {
	chain := make([]Scope, 0, 3)
	if location.Subdivision != "" {
		scope := Scope{Country: location.Country, Subdivision: location.Subdivision}
		if table.hasScope(scope) {
			chain = append(chain, scope)
		}
	}
	if location.Country != "" {
		scope := Scope{Country: location.Country}
		if table.hasScope(scope) {
			chain = append(chain, scope)
		}
	}
	if table.hasScope(GlobalScope) {
		chain = append(chain, GlobalScope)
	}
	return chain
}
