package legalspeeds

type VehicleType uint16

const (
	VEHICLE_HGV = VehicleType(iota + 1)
	VEHICLE_GOODS
	VEHICLE_BUS
	VEHICLE_COACH
	VEHICLE_MOTORCYCLE
	VEHICLE_AGRICULTURAL
	VEHICLE_TRAILER
	VEHICLE_CARAVAN
	VEHICLE_PSV
	VEHICLE_UNDEFINED = VehicleType(0)
)

func (iotaIdx VehicleType) String() string {
	return [...]string{"undefined", "hgv", "goods", "bus", "coach", "motorcycle", "agricultural", "trailer", "caravan", "psv"}[iotaIdx]
}

func getVehicleType(str string) VehicleType {
	if found, ok := vehicleTypes[str]; ok {
		return found
	}
	return VEHICLE_UNDEFINED
}

var (
	// Keys follow the maxspeed:<vehicle> suffixes used in the rule data.
	// "truck" and "tractor" are wiki-side spellings of the same categories.
	vehicleTypes = map[string]VehicleType{
		"hgv":          VEHICLE_HGV,
		"truck":        VEHICLE_HGV,
		"goods":        VEHICLE_GOODS,
		"bus":          VEHICLE_BUS,
		"coach":        VEHICLE_COACH,
		"motorcycle":   VEHICLE_MOTORCYCLE,
		"agricultural": VEHICLE_AGRICULTURAL,
		"tractor":      VEHICLE_AGRICULTURAL,
		"trailer":      VEHICLE_TRAILER,
		"caravan":      VEHICLE_CARAVAN,
		"psv":          VEHICLE_PSV,
	}

	// knownVehicleTypes fixes the evaluation order of the per-vehicle
	// override sub-search. Unknown categories are never evaluated.
	knownVehicleTypes = [...]VehicleType{
		VEHICLE_HGV,
		VEHICLE_GOODS,
		VEHICLE_BUS,
		VEHICLE_COACH,
		VEHICLE_MOTORCYCLE,
		VEHICLE_AGRICULTURAL,
		VEHICLE_TRAILER,
		VEHICLE_CARAVAN,
		VEHICLE_PSV,
	}
)
