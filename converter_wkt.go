package legalspeeds

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// PrepareWKTLinestring returns WKT representation of LineString
func PrepareWKTLinestring(pts []GeoPoint) string {
	ptsStr := make([]string, len(pts))
	for i := range pts {
		ptsStr[i] = fmt.Sprintf("%f %f", pts[i].Lon, pts[i].Lat)
	}
	return fmt.Sprintf("LINESTRING(%s)", strings.Join(ptsStr, ","))
}

// WriteWaysCSV Writes annotated ways as semicolon-separated values with WKT
// geometry. Columns:
//
//	way_id - int64, ID of source OSM way
//	name - name tag of the way (may be empty)
//	road_type - name of the matched rule's road type (may be empty)
//	maxspeed - inferred general limit in OSM maxspeed notation
//	overrides - inferred per-vehicle limits, 'vehicle=speed' joined by commas
//	geom - geometry (WKT representation)
func WriteWaysCSV(w io.Writer, ways []AnnotatedWay) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	writer.Comma = ';'

	err := writer.Write([]string{"way_id", "name", "road_type", "maxspeed", "overrides", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for i := range ways {
		way := &ways[i]
		overrides := make([]string, 0, len(way.Speed.Overrides))
		for _, vehicle := range knownVehicleTypes {
			if speed, ok := way.Speed.Override(vehicle); ok {
				overrides = append(overrides, fmt.Sprintf("%s=%s", vehicle, speed))
			}
		}
		err = writer.Write([]string{
			fmt.Sprintf("%d", way.ID),
			way.Name,
			way.Speed.RoadType,
			way.Speed.General.String(),
			strings.Join(overrides, ","),
			PrepareWKTLinestring(way.Geom),
		})
		if err != nil {
			return errors.Wrapf(err, "Can't write way %d", way.ID)
		}
	}
	return nil
}
