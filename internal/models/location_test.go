package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceIsPlanarEuclidean(t *testing.T) {
	origin := Location{Lat: 0, Lon: 0}
	target := Location{Lat: 3, Lon: 4}

	assert.Equal(t, 5.0, origin.Distance(target))
	assert.Equal(t, 5.0, target.Distance(origin), "distance is symmetric")
}

func TestDistanceToSelfIsZero(t *testing.T) {
	p := Location{Lat: 40.4168, Lon: -3.7034}
	assert.Equal(t, 0.0, p.Distance(p))
}

func TestLocationScanParsesPoint(t *testing.T) {
	var l Location
	err := l.Scan("POINT(-3.703400 40.416800)")
	assert.NoError(t, err)
	assert.InDelta(t, -3.7034, l.Lon, 1e-6)
	assert.InDelta(t, 40.4168, l.Lat, 1e-6)
}
