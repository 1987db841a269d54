package geo

import "math"

const (
	// earthRadiusMiles spherical earth approximation used for every distance in the road graph.
	earthRadiusMiles = 3963.0
)

func havFunction(angleRad float64) float64 {
	return math.Pow(math.Sin(angleRad/2.0), 2)
}

// HaversineDistance returns the great-circle distance in miles between (lon1, lat1) and (lon2, lat2).
// https://www.movable-type.co.uk/scripts/latlong.html
func HaversineDistance(lon1, lat1, lon2, lat2 float64) float64 {
	phi1 := degToRad(lat1)
	phi2 := degToRad(lat2)
	dPhi := degToRad(lat2 - lat1)
	dLambda := degToRad(lon2 - lon1)

	a := havFunction(dPhi) + math.Cos(phi1)*math.Cos(phi2)*havFunction(dLambda)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}

// Bearing returns the initial bearing in degrees, in (-180, 180], of the great-circle arc
// from (lon1, lat1) to (lon2, lat2).
func Bearing(lon1, lat1, lon2, lat2 float64) float64 {
	phi1 := degToRad(lat1)
	phi2 := degToRad(lat2)
	lambda1 := degToRad(lon1)
	lambda2 := degToRad(lon2)

	y := math.Sin(lambda2-lambda1) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(lambda2-lambda1)
	return radToDeg(math.Atan2(y, x))
}

// BearingDelta returns the signed change of heading from bearing `from` to bearing `to`,
// normalized to (-180, 180]. positive = clockwise (right).
func BearingDelta(from, to float64) float64 {
	delta := math.Mod(to-from, 360.0)
	if delta <= -180.0 {
		delta += 360.0
	} else if delta > 180.0 {
		delta -= 360.0
	}
	return delta
}
