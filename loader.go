package legalspeeds

import (
	"encoding/json"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Dataset shape produced by the speed-limit wiki parser: road type
// definitions keyed by name, speed rows keyed by country or subdivision
// code ("DE", "BE-VLG").
type datasetJSON struct {
	RoadTypesByName          map[string]roadTypeJSON   `json:"roadTypesByName"`
	SpeedLimitsByCountryCode map[string][]speedRowJSON `json:"speedLimitsByCountryCode"`
}

type roadTypeJSON struct {
	Filter         string `json:"filter"`
	FuzzyFilter    string `json:"fuzzyFilter"`
	RelationFilter string `json:"relationFilter"`
}

type speedRowJSON struct {
	Name string            `json:"name"`
	Tags map[string]string `json:"tags"`
}

// LoadRules Reads rule data in the published JSON form and converts it to
// the in-memory rules BuildRuleTable consumes. Row tags named "maxspeed"
// become the general value, "maxspeed:<vehicle>" keys become per-vehicle
// overrides; values that do not parse as speeds (conditionals and the like)
// are dropped silently. Rules come out in deterministic declaration order
// regardless of JSON map ordering.
func LoadRules(r io.Reader) ([]Rule, error) {
	var dataset datasetJSON
	if err := json.NewDecoder(r).Decode(&dataset); err != nil {
		return nil, errors.Wrap(err, "Decode rule data")
	}
	roadTypes, err := resolveRoadTypes(dataset.RoadTypesByName)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(dataset.SpeedLimitsByCountryCode))
	for code := range dataset.SpeedLimitsByCountryCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	rules := []Rule{}
	for _, code := range codes {
		scope := scopeFromCode(code)
		for _, row := range dataset.SpeedLimitsByCountryCode[code] {
			rule := Rule{Scope: scope, Name: row.Name}
			if row.Name != "" {
				// A row naming an undefined road type still loads; it just
				// carries no distinguishing clauses.
				if predicate, ok := roadTypes[row.Name]; ok {
					rule.Predicate = predicate
				}
			}
			for key, value := range row.Tags {
				if key == "maxspeed" {
					rule.General = parseSpeedValue(value)
					continue
				}
				if !strings.HasPrefix(key, "maxspeed:") {
					continue
				}
				vehicle := getVehicleType(strings.TrimPrefix(key, "maxspeed:"))
				if vehicle == VEHICLE_UNDEFINED {
					continue
				}
				speed := parseSpeedValue(value)
				if !speed.Defined() {
					continue
				}
				if rule.Overrides == nil {
					rule.Overrides = make(map[VehicleType]SpeedValue)
				}
				rule.Overrides[vehicle] = speed
			}
			rules = append(rules, rule)
		}
	}
	return rules, nil
}

// LoadRulesFromFile Reads rule data from a JSON file. See LoadRules.
func LoadRulesFromFile(fileName string) ([]Rule, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "File open")
	}
	defer f.Close()
	return LoadRules(f)
}

// LoadRuleTableFromFile One-shot helper: read, convert, build
func LoadRuleTableFromFile(fileName string) (*RuleTable, error) {
	rules, err := LoadRulesFromFile(fileName)
	if err != nil {
		return nil, err
	}
	return BuildRuleTable(rules)
}

// resolveRoadTypes Parses road type filters into predicates. Filters may
// reference each other via {name} placeholders, so parsing iterates until a
// full pass makes no progress; whatever is left then is an unresolvable
// (missing or cyclic) reference. The strict filter is preferred, rows whose
// road type only has a fuzzy filter fall back to it.
func resolveRoadTypes(byName map[string]roadTypeJSON) (map[string]Predicate, error) {
	resolved := make(map[string]Predicate, len(byName))
	pending := make(map[string]string, len(byName))
	for name, roadType := range byName {
		filter := roadType.Filter
		if filter == "" {
			filter = roadType.FuzzyFilter
		}
		if filter == "" {
			// Relation-level filters need relation membership we never see;
			// such road types match any tag set.
			resolved[name] = Predicate{}
			continue
		}
		pending[name] = filter
	}
	for len(pending) > 0 {
		progress := false
		names := make([]string, 0, len(pending))
		for name := range pending {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			predicate, err := ParseFilter(pending[name], resolved)
			if errors.Is(err, errUnknownRoadType) {
				continue
			}
			if err != nil {
				return nil, errors.Wrapf(err, "road type '%s'", name)
			}
			resolved[name] = predicate
			delete(pending, name)
			progress = true
		}
		if !progress {
			names := make([]string, 0, len(pending))
			for name := range pending {
				names = append(names, name)
			}
			sort.Strings(names)
			return nil, errors.Errorf("unresolvable road type references: %s", strings.Join(names, ", "))
		}
	}
	return resolved, nil
}

// scopeFromCode Maps a dataset key to a jurisdiction scope: "DE" is a
// country, "BE-VLG" a subdivision of Belgium.
func scopeFromCode(code string) Scope {
	code = strings.ToUpper(strings.TrimSpace(code))
	if idx := strings.Index(code, "-"); idx > 0 {
		return Scope{Country: code[:idx], Subdivision: code}
	}
	return Scope{Country: code}
}
