package models

import (
	"fmt"
	"math"
)

type Location struct {
	Lat float64 `json:"lat" parquet:"name=lat,type=DOUBLE"`
	Lon float64 `json:"lon" parquet:"name=lon,type=DOUBLE"`
}

// Distance returns the planar Euclidean distance between two coordinates,
// treating the latitude/longitude axes as a flat plane. This deliberately
// mirrors the metric the whole system is calibrated against (search radius
// and fares included); it is not a geodesic distance.
func (l Location) Distance(other Location) float64 {
	return math.Sqrt(math.Pow(other.Lat-l.Lat, 2) + math.Pow(other.Lon-l.Lon, 2))
}

func (l *Location) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		_, err := fmt.Sscanf(string(v), "POINT(%f %f)", &l.Lon, &l.Lat)
		return err
	case string:
		_, err := fmt.Sscanf(v, "POINT(%f %f)", &l.Lon, &l.Lat)
		return err
	default:
		return fmt.Errorf("unsupported type for Location: %T", value)
	}
}
