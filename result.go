package legalspeeds

// MatchResult Outcome of one inference query. The zero value is the
// "no legal default" sentinel: no rule in any scope applied.
type MatchResult struct {
	General   SpeedValue
	RoadType  string // name of the winning rule's road type, if it had one
	Overrides map[VehicleType]SpeedValue
}

// Defined Reports whether any rule applied at all
func (result MatchResult) Defined() bool {
	return result.General.Defined()
}

// Override Returns the per-vehicle limit, if one was resolved. Categories
// without an override inherit the general value; the result never restates
// it for them.
func (result MatchResult) Override(vehicle VehicleType) (SpeedValue, bool) {
	speed, ok := result.Overrides[vehicle]
	return speed, ok
}
