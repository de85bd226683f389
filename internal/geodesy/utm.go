// Package geodesy projects geographic coordinates onto the Universal
// Transverse Mercator grid.
package geodesy

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidZone is returned for zone numbers outside 1..60.
var ErrInvalidZone = errors.New("UTM zone must be between 1 and 60")

// WGS84 ellipsoid and UTM grid constants.
const (
	k0           = 0.9996
	eccSquared   = 0.00669438
	equatorR     = 6378137.0
	falseEasting = 500000.0
	falseNorth   = 10000000.0
)

var (
	eccPrime2 = eccSquared / (1 - eccSquared)

	m1 = 1 - eccSquared/4 - 3*eccSquared*eccSquared/64 - 5*eccSquared*eccSquared*eccSquared/256
	m2 = 3*eccSquared/8 + 3*eccSquared*eccSquared/32 + 45*eccSquared*eccSquared*eccSquared/1024
	m3 = 15*eccSquared*eccSquared/256 + 45*eccSquared*eccSquared*eccSquared/1024
	m4 = 35 * eccSquared * eccSquared * eccSquared / 3072
)

// UTM projects into one fixed zone. Points outside the zone are still
// projected against its central meridian, so a mesh spanning a zone
// boundary stays continuous.
type UTM struct {
	Zone  int
	North bool
}

// New returns the projector for a zone and hemisphere ('N' or 'S').
func New(zone int, hemisphere byte) (UTM, error) {
	if zone < 1 || zone > 60 {
		return UTM{}, fmt.Errorf("%w: %d", ErrInvalidZone, zone)
	}
	return UTM{Zone: zone, North: hemisphere != 'S'}, nil
}

// CentralMeridian returns the zone's central longitude in degrees.
func (u UTM) CentralMeridian() float64 {
	return float64((u.Zone-1)*6-180) + 3
}

// Forward converts a longitude/latitude pair in degrees to easting and
// northing in metres.
func (u UTM) Forward(lon, lat float64) (x, y float64) {
	latRad := lat * math.Pi / 180
	sinLat, cosLat := math.Sincos(latRad)
	tanLat := sinLat / cosLat
	tan2 := tanLat * tanLat
	tan4 := tan2 * tan2

	dLon := (lon - u.CentralMeridian()) * math.Pi / 180

	n := equatorR / math.Sqrt(1-eccSquared*sinLat*sinLat)
	c := eccPrime2 * cosLat * cosLat

	a := cosLat * dLon
	a2 := a * a
	a3 := a2 * a
	a4 := a3 * a
	a5 := a4 * a
	a6 := a5 * a

	m := equatorR * (m1*latRad -
		m2*math.Sin(2*latRad) +
		m3*math.Sin(4*latRad) -
		m4*math.Sin(6*latRad))

	x = k0*n*(a+
		a3/6*(1-tan2+c)+
		a5/120*(5-18*tan2+tan4+72*c-58*eccPrime2)) + falseEasting

	y = k0 * (m + n*tanLat*(a2/2+
		a4/24*(5-tan2+9*c+4*c*c)+
		a6/720*(61-58*tan2+tan4+600*c-330*eccPrime2)))

	if !u.North {
		y += falseNorth
	}
	return x, y
}

// String returns the zone as "32N" style text.
func (u UTM) String() string {
	h := 'N'
	if !u.North {
		h = 'S'
	}
	return fmt.Sprintf("%d%c", u.Zone, h)
}

// ZoneFor returns the standard UTM zone and hemisphere of a position,
// including the south-west Norway and Svalbard exceptions.
func ZoneFor(lon, lat float64) (zone int, hemisphere byte) {
	hemisphere = 'N'
	if lat < 0 {
		hemisphere = 'S'
	}

	if lat >= 56 && lat < 64 && lon >= 3 && lon < 12 {
		return 32, hemisphere
	}
	if lat >= 72 && lat <= 84 && lon >= 0 {
		switch {
		case lon < 9:
			return 31, hemisphere
		case lon < 21:
			return 33, hemisphere
		case lon < 33:
			return 35, hemisphere
		case lon < 42:
			return 37, hemisphere
		}
	}

	return int((lon+180)/6)%60 + 1, hemisphere
}
