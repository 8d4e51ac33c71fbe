package resample

import "sort"

// hullPoint is a (lon, lat) vertex used by the convex hull gate.
type hullPoint struct {
	lon, lat float64
}

// convexHull computes the convex hull of the given points with Andrew's
// monotone chain, returned counter-clockwise without the repeated endpoint.
func convexHull(points []hullPoint) []hullPoint {
	if len(points) < 3 {
		return append([]hullPoint(nil), points...)
	}
	pts := append([]hullPoint(nil), points...)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].lon != pts[j].lon {
			return pts[i].lon < pts[j].lon
		}
		return pts[i].lat < pts[j].lat
	})

	var lower []hullPoint
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	var upper []hullPoint
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}
	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}

func cross(o, a, b hullPoint) float64 {
	return (a.lon-o.lon)*(b.lat-o.lat) - (a.lat-o.lat)*(b.lon-o.lon)
}

// contains reports whether (lon, lat) lies inside or on the hull boundary.
func contains(hull []hullPoint, lon, lat float64) bool {
	if len(hull) < 3 {
		return false
	}
	const eps = 1e-9
	p := hullPoint{lon: lon, lat: lat}
	for i := range hull {
		a := hull[i]
		b := hull[(i+1)%len(hull)]
		if cross(a, b, p) < -eps {
			return false
		}
	}
	return true
}
