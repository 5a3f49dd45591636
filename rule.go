package legalspeeds

// Rule Single legal default: "within this jurisdiction, roads looking like
// this have that limit". Produced by the rule-data loader, consumed by
// BuildRuleTable; the matcher never sees rules outside a built table.
type Rule struct {
	Scope     Scope
	Name      string // road type name from the rule data, informational
	Predicate Predicate
	General   SpeedValue
	Overrides map[VehicleType]SpeedValue
}

// Override Returns per-vehicle limit declared by this rule, if any
func (rule *Rule) Override(vehicle VehicleType) (SpeedValue, bool) {
	speed, ok := rule.Overrides[vehicle]
	return speed, ok
}
