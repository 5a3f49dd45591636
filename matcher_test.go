package legalspeeds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTable(t *testing.T, rules []Rule) *RuleTable {
	t.Helper()
	table, err := BuildRuleTable(rules)
	require.NoError(t, err)
	return table
}

func TestInferEmptyTableReturnsSentinel(t *testing.T) {
	matcher := NewMatcher(buildTable(t, nil))

	result := matcher.Infer(TagSet{"highway": "motorway"}, NewLocation("DE", ""))
	assert.False(t, result.Defined())
	assert.Empty(t, result.Overrides)

	result = matcher.Infer(TagSet{}, Location{})
	assert.False(t, result.Defined())
}

func TestInferMostSpecificRuleWinsWithinScope(t *testing.T) {
	scope := CountryScope("DE")
	matcher := NewMatcher(buildTable(t, []Rule{
		{Scope: scope, Predicate: NewPredicate(), General: Kmh(100)},
		{Scope: scope, Predicate: NewPredicate(
			ClauseRoadClass(ROAD_TRACK),
			ClauseEquals("tracktype", "grade1"),
		), General: Kmh(60)},
		{Scope: scope, Predicate: NewPredicate(ClauseRoadClass(ROAD_TRACK)), General: Kmh(40)},
	}))

	// Both track rules match; the two-clause one is more specific. The
	// catch-all matches too but loses on specificity.
	result := matcher.Infer(TagSet{"highway": "track", "tracktype": "grade1"}, NewLocation("DE", ""))
	require.True(t, result.Defined())
	assert.Equal(t, Kmh(60), result.General)

	result = matcher.Infer(TagSet{"highway": "track"}, NewLocation("DE", ""))
	assert.Equal(t, Kmh(40), result.General)

	result = matcher.Infer(TagSet{"highway": "residential"}, NewLocation("DE", ""))
	assert.Equal(t, Kmh(100), result.General)
}

func TestInferSubdivisionBeatsCountryRegardlessOfSpecificity(t *testing.T) {
	matcher := NewMatcher(buildTable(t, []Rule{
		// Country rule is far more specific than the subdivision catch-all.
		{Scope: CountryScope("DE"), Predicate: NewPredicate(
			ClauseRoadClass(ROAD_RESIDENTIAL),
			ClauseEquals("lit", "yes"),
			ClauseAbsent("oneway"),
		), General: Kmh(50)},
		{Scope: SubdivisionScope("DE", "NI"), Predicate: NewPredicate(), General: Kmh(30)},
	}))

	tags := TagSet{"highway": "residential", "lit": "yes"}
	result := matcher.Infer(tags, NewLocation("DE", "NI"))
	assert.Equal(t, Kmh(30), result.General)

	// Without the subdivision the country rule fires.
	result = matcher.Infer(tags, NewLocation("DE", ""))
	assert.Equal(t, Kmh(50), result.General)
}

func TestInferFallsThroughScopeWithoutMatch(t *testing.T) {
	// A subdivision scope exists but none of its rules match: the chain
	// falls through to the country.
	matcher := NewMatcher(buildTable(t, []Rule{
		{Scope: SubdivisionScope("DE", "NI"), Predicate: NewPredicate(ClauseRoadClass(ROAD_MOTORWAY)), General: NoLimit()},
		{Scope: CountryScope("DE"), Predicate: NewPredicate(ClauseRoadClass(ROAD_LIVING_STREET)), General: Kmh(7)},
	}))

	result := matcher.Infer(TagSet{"highway": "living_street"}, NewLocation("DE", "NI"))
	require.True(t, result.Defined())
	assert.Equal(t, Kmh(7), result.General)
	assert.Empty(t, result.Overrides)
}

func TestInferGermanMotorway(t *testing.T) {
	matcher := NewMatcher(buildTable(t, []Rule{
		{Scope: CountryScope("DE"), Name: "motorway", Predicate: NewPredicate(ClauseRoadClass(ROAD_MOTORWAY)), General: NoLimit()},
	}))

	result := matcher.Infer(TagSet{"highway": "motorway"}, NewLocation("DE", ""))
	require.True(t, result.Defined())
	assert.Equal(t, NoLimit(), result.General)
	assert.Equal(t, "motorway", result.RoadType)
	assert.Empty(t, result.Overrides)
}

func TestInferGlobalFallbackScope(t *testing.T) {
	matcher := NewMatcher(buildTable(t, []Rule{
		{Scope: GlobalScope, Predicate: NewPredicate(ClauseRoadClass(ROAD_MOTORWAY)), General: Kmh(120)},
		{Scope: CountryScope("DE"), Predicate: NewPredicate(ClauseRoadClass(ROAD_LIVING_STREET)), General: Kmh(7)},
	}))

	// No rules at all for the queried country: only the global scope remains.
	result := matcher.Infer(TagSet{"highway": "motorway"}, NewLocation("XY", ""))
	assert.Equal(t, Kmh(120), result.General)

	// Country rules exist but none match; global still answers.
	result = matcher.Infer(TagSet{"highway": "motorway"}, NewLocation("DE", ""))
	assert.Equal(t, Kmh(120), result.General)
}

func TestInferVehicleOverrides(t *testing.T) {
	scope := CountryScope("DE")
	matcher := NewMatcher(buildTable(t, []Rule{
		{
			Scope:     scope,
			Predicate: NewPredicate(ClauseRoadClass(ROAD_UNCLASSIFIED)),
			General:   Kmh(100),
			Overrides: map[VehicleType]SpeedValue{
				VEHICLE_HGV:     Kmh(80),
				VEHICLE_TRAILER: Kmh(80),
			},
		},
		{Scope: scope, Predicate: NewPredicate(ClauseRoadClass(ROAD_LIVING_STREET)), General: Kmh(7)},
	}))

	result := matcher.Infer(TagSet{"highway": "unclassified", "maxweight": "7.5"}, NewLocation("DE", ""))
	require.True(t, result.Defined())
	assert.Equal(t, Kmh(100), result.General)
	hgv, ok := result.Override(VEHICLE_HGV)
	require.True(t, ok)
	assert.Equal(t, Kmh(80), hgv)
	_, ok = result.Override(VEHICLE_MOTORCYCLE)
	assert.False(t, ok)

	// The living street rule declares nothing per vehicle: no overrides.
	result = matcher.Infer(TagSet{"highway": "living_street"}, NewLocation("DE", ""))
	assert.Empty(t, result.Overrides)
}

func TestInferOverrideResolvedAcrossScopes(t *testing.T) {
	// Subdivision narrows only the motorcycle limit; the country rule keeps
	// supplying the general value and the hgv limit.
	matcher := NewMatcher(buildTable(t, []Rule{
		{
			Scope:     SubdivisionScope("DE", "NI"),
			Predicate: NewPredicate(ClauseRoadClass(ROAD_UNCLASSIFIED)),
			Overrides: map[VehicleType]SpeedValue{VEHICLE_MOTORCYCLE: Kmh(60)},
		},
		{
			Scope:     CountryScope("DE"),
			Predicate: NewPredicate(ClauseRoadClass(ROAD_UNCLASSIFIED)),
			General:   Kmh(100),
			Overrides: map[VehicleType]SpeedValue{VEHICLE_HGV: Kmh(80)},
		},
	}))

	result := matcher.Infer(TagSet{"highway": "unclassified"}, NewLocation("DE", "NI"))
	require.True(t, result.Defined())
	assert.Equal(t, Kmh(100), result.General)

	motorcycle, ok := result.Override(VEHICLE_MOTORCYCLE)
	require.True(t, ok)
	assert.Equal(t, Kmh(60), motorcycle)

	hgv, ok := result.Override(VEHICLE_HGV)
	require.True(t, ok)
	assert.Equal(t, Kmh(80), hgv)
}

func TestInferMoreSpecificScopeWinsOverrideTie(t *testing.T) {
	matcher := NewMatcher(buildTable(t, []Rule{
		{
			Scope:     SubdivisionScope("DE", "NI"),
			Predicate: NewPredicate(ClauseRoadClass(ROAD_UNCLASSIFIED)),
			General:   Kmh(90),
			Overrides: map[VehicleType]SpeedValue{VEHICLE_HGV: Kmh(70)},
		},
		{
			Scope:     CountryScope("DE"),
			Predicate: NewPredicate(ClauseRoadClass(ROAD_UNCLASSIFIED)),
			General:   Kmh(100),
			Overrides: map[VehicleType]SpeedValue{VEHICLE_HGV: Kmh(80)},
		},
	}))

	result := matcher.Infer(TagSet{"highway": "unclassified"}, NewLocation("DE", "NI"))
	assert.Equal(t, Kmh(90), result.General)
	hgv, _ := result.Override(VEHICLE_HGV)
	assert.Equal(t, Kmh(70), hgv)
}

func TestInferIdempotence(t *testing.T) {
	matcher := NewMatcher(buildTable(t, []Rule{
		{
			Scope:     CountryScope("DE"),
			Predicate: NewPredicate(ClauseRoadClass(ROAD_UNCLASSIFIED)),
			General:   Kmh(100),
			Overrides: map[VehicleType]SpeedValue{VEHICLE_HGV: Kmh(80)},
		},
	}))

	tags := TagSet{"highway": "unclassified"}
	location := NewLocation("DE", "")
	first := matcher.Infer(tags, location)
	second := matcher.Infer(tags, location)
	assert.Equal(t, first, second)
}

func TestInferSkipsRulesWithoutGeneralValue(t *testing.T) {
	// An override-only rule is more specific than the general one, but it
	// cannot decide the general limit.
	scope := CountryScope("DE")
	matcher := NewMatcher(buildTable(t, []Rule{
		{
			Scope: scope,
			Predicate: NewPredicate(
				ClauseRoadClass(ROAD_UNCLASSIFIED),
				ClauseEquals("surface", "gravel"),
			),
			Overrides: map[VehicleType]SpeedValue{VEHICLE_HGV: Kmh(40)},
		},
		{Scope: scope, Predicate: NewPredicate(ClauseRoadClass(ROAD_UNCLASSIFIED)), General: Kmh(100)},
	}))

	result := matcher.Infer(TagSet{"highway": "unclassified", "surface": "gravel"}, NewLocation("DE", ""))
	require.True(t, result.Defined())
	assert.Equal(t, Kmh(100), result.General)
	hgv, ok := result.Override(VEHICLE_HGV)
	require.True(t, ok)
	assert.Equal(t, Kmh(40), hgv)
}
