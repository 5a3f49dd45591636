package legalspeeds

type RoadClass uint16

const (
	ROAD_MOTORWAY = RoadClass(iota + 1)
	ROAD_MOTORWAY_LINK
	ROAD_TRUNK
	ROAD_TRUNK_LINK
	ROAD_PRIMARY
	ROAD_PRIMARY_LINK
	ROAD_SECONDARY
	ROAD_SECONDARY_LINK
	ROAD_TERTIARY
	ROAD_TERTIARY_LINK
	ROAD_RESIDENTIAL
	ROAD_RESIDENTIAL_LINK
	ROAD_LIVING_STREET
	ROAD_SERVICE
	ROAD_CYCLEWAY
	ROAD_FOOTWAY
	ROAD_PEDESTRIAN
	ROAD_TRACK
	ROAD_UNCLASSIFIED
	ROAD_UNDEFINED = RoadClass(0)
)

func (iotaIdx RoadClass) String() string {
	return [...]string{"undefined", "motorway", "motorway_link", "trunk", "trunk_link", "primary", "primary_link", "secondary", "secondary_link", "tertiary", "tertiary_link", "residential", "residential_link", "living_street", "service", "cycleway", "footway", "pedestrian", "track", "unclassified"}[iotaIdx]
}

func getRoadClass(str string) RoadClass {
	if found, ok := roadClasses[str]; ok {
		return found
	}
	return ROAD_UNDEFINED
}

var (
	roadClasses = map[string]RoadClass{
		"motorway":         ROAD_MOTORWAY,
		"motorway_link":    ROAD_MOTORWAY_LINK,
		"trunk":            ROAD_TRUNK,
		"trunk_link":       ROAD_TRUNK_LINK,
		"primary":          ROAD_PRIMARY,
		"primary_link":     ROAD_PRIMARY_LINK,
		"secondary":        ROAD_SECONDARY,
		"secondary_link":   ROAD_SECONDARY_LINK,
		"tertiary":         ROAD_TERTIARY,
		"tertiary_link":    ROAD_TERTIARY_LINK,
		"residential":      ROAD_RESIDENTIAL,
		"residential_link": ROAD_RESIDENTIAL_LINK,
		"living_street":    ROAD_LIVING_STREET,
		"service":          ROAD_SERVICE,
		"cycleway":         ROAD_CYCLEWAY,
		"footway":          ROAD_FOOTWAY,
		"pedestrian":       ROAD_PEDESTRIAN,
		"track":            ROAD_TRACK,
		"unclassified":     ROAD_UNCLASSIFIED,
	}
)
