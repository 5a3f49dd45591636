package legalspeeds

import "strings"

type Environment uint16

const (
	ENVIRONMENT_URBAN = Environment(iota + 1)
	ENVIRONMENT_RURAL
	ENVIRONMENT_UNDEFINED = Environment(0)
)

func (iotaIdx Environment) String() string {
	return [...]string{"undefined", "urban", "rural"}[iotaIdx]
}

var (
	// Tags inspected (in order) to tell whether a road segment sits inside
	// a built-up area. See ref.: https://wiki.openstreetmap.org/wiki/Key:zone:traffic
	environmentTagKeys = [...]string{
		"zone:traffic",
		"maxspeed:type",
		"source:maxspeed",
	}

	litEnvironment = map[string]Environment{
		"yes": ENVIRONMENT_URBAN,
		"no":  ENVIRONMENT_RURAL,
	}
)

// deriveEnvironment classifies a tag set as urban or rural. Zone tags carry
// values like "DE:urban" or plain "rural"; zone30-style values imply a
// built-up area. The lit tag is the weakest signal and is consulted last.
func deriveEnvironment(tags TagSet) Environment {
	for _, key := range environmentTagKeys {
		if value, ok := tags.Get(key); ok {
			if env := zoneEnvironment(value); env != ENVIRONMENT_UNDEFINED {
				return env
			}
		}
	}
	if value, ok := tags.Get("lit"); ok {
		if env, ok := litEnvironment[value]; ok {
			return env
		}
	}
	return ENVIRONMENT_UNDEFINED
}

func zoneEnvironment(value string) Environment {
	if idx := strings.LastIndex(value, ":"); idx >= 0 {
		value = value[idx+1:]
	}
	switch {
	case value == "urban":
		return ENVIRONMENT_URBAN
	case value == "rural":
		return ENVIRONMENT_RURAL
	case strings.HasPrefix(value, "zone"):
		return ENVIRONMENT_URBAN
	}
	return ENVIRONMENT_UNDEFINED
}
