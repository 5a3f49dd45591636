package legalspeeds

import (
	geojson "github.com/paulmach/go.geojson"
)

// PrepareGeoJSONFeatures Returns GeoJSON representation of annotated ways.
// Each way becomes a LineString feature carrying the inferred limits as
// properties in OSM maxspeed notation.
func PrepareGeoJSONFeatures(ways []AnnotatedWay) *geojson.FeatureCollection {
	collection := geojson.NewFeatureCollection()
	for i := range ways {
		collection.AddFeature(prepareGeoJSONWay(&ways[i]))
	}
	return collection
}

func prepareGeoJSONWay(way *AnnotatedWay) *geojson.Feature {
	pts2d := make([][]float64, len(way.Geom))
	for i := range way.Geom {
		pts2d[i] = []float64{way.Geom[i].Lon, way.Geom[i].Lat}
	}
	feature := geojson.NewLineStringFeature(pts2d)
	feature.SetProperty("way_id", int64(way.ID))
	if way.Name != "" {
		feature.SetProperty("name", way.Name)
	}
	if way.Speed.RoadType != "" {
		feature.SetProperty("road_type", way.Speed.RoadType)
	}
	feature.SetProperty("maxspeed", way.Speed.General.String())
	for vehicle, speed := range way.Speed.Overrides {
		feature.SetProperty("maxspeed:"+vehicle.String(), speed.String())
	}
	return feature
}
