package legalspeeds

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type SpeedKind uint16

const (
	SPEED_KMH = SpeedKind(iota + 1)
	SPEED_MPH
	SPEED_NONE
	SPEED_WALK
	SPEED_UNDEFINED = SpeedKind(0)
)

func (iotaIdx SpeedKind) String() string {
	return [...]string{"undefined", "km/h", "mph", "none", "walk"}[iotaIdx]
}

// SpeedValue Speed limit value of a rule. Numeric kinds carry the value in
// their own unit; SPEED_NONE means "no limit", SPEED_WALK means walking pace.
type SpeedValue struct {
	Kind  SpeedKind
	Value float64
}

// Kmh Returns speed value in kilometers per hour
func Kmh(value float64) SpeedValue {
	return SpeedValue{Kind: SPEED_KMH, Value: value}
}

// Mph Returns speed value in miles per hour
func Mph(value float64) SpeedValue {
	return SpeedValue{Kind: SPEED_MPH, Value: value}
}

// NoLimit Explicit absence of a legal limit (e.g. german motorways)
func NoLimit() SpeedValue {
	return SpeedValue{Kind: SPEED_NONE}
}

// WalkingPace Limit defined as walking speed (e.g. living streets)
func WalkingPace() SpeedValue {
	return SpeedValue{Kind: SPEED_WALK}
}

// Defined Reports whether the value carries any limit information at all
func (speed SpeedValue) Defined() bool {
	return speed.Kind != SPEED_UNDEFINED
}

// String Pretty printing for SpeedValue. Matches the OSM maxspeed notation.
func (speed SpeedValue) String() string {
	switch speed.Kind {
	case SPEED_KMH:
		return strconv.FormatFloat(speed.Value, 'f', -1, 64)
	case SPEED_MPH:
		return fmt.Sprintf("%s mph", strconv.FormatFloat(speed.Value, 'f', -1, 64))
	case SPEED_NONE:
		return "none"
	case SPEED_WALK:
		return "walk"
	}
	return "undefined"
}

var (
	mphRegExp = regexp.MustCompile(`^(\d+\.?\d*)\s*mph$`)
	kmhRegExp = regexp.MustCompile(`^\d+\.?\d*$`)
)

// parseSpeedValue parses dataset notation: "130", "65 mph", "none", "walk".
// Anything else (conditional values, ranges, prose) yields an undefined
// value: bad data degrades to "no information", never to an error.
func parseSpeedValue(str string) SpeedValue {
	str = strings.TrimSpace(str)
	switch str {
	case "":
		return SpeedValue{}
	case "none":
		return NoLimit()
	case "walk":
		return WalkingPace()
	}
	if kmhRegExp.MatchString(str) {
		value, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return SpeedValue{}
		}
		return Kmh(value)
	}
	if parts := mphRegExp.FindStringSubmatch(str); parts != nil {
		value, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return SpeedValue{}
		}
		return Mph(value)
	}
	return SpeedValue{}
}
