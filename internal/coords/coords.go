// Package coords converts Dutch national grid (Rijksdriehoek) coordinates
// to WGS84 longitude/latitude.
package coords

// Amersfoort is the RD origin (Onze Lieve Vrouwetoren).
const (
	rdX0 = 155000.0
	rdY0 = 463000.0
	phi0 = 52.15517440
	lam0 = 5.38720621
)

// RDToWGS84 converts RD x/y in meters to WGS84 longitude and latitude in
// degrees using the Schreutelkamp/Strang van Hees polynomial approximation.
// The approximation is accurate to well under a meter inside the Netherlands.
func RDToWGS84(x, y float64) (lon, lat float64) {
	dx := (x - rdX0) * 1e-5
	dy := (y - rdY0) * 1e-5

	phiSec := 3235.65389*dy +
		-32.58297*dx*dx +
		-0.24750*dy*dy +
		-0.84978*dx*dx*dy +
		-0.06550*dy*dy*dy +
		-0.01709*dx*dx*dy*dy +
		-0.00738*dx +
		0.00530*dx*dx*dx*dx +
		-0.00039*dx*dx*dy*dy*dy +
		0.00033*dx*dx*dx*dx*dy +
		-0.00012*dx*dy

	lamSec := 5260.52916*dx +
		105.94684*dx*dy +
		2.45656*dx*dy*dy +
		-0.81885*dx*dx*dx +
		0.05594*dx*dy*dy*dy +
		-0.05607*dx*dx*dx*dy +
		0.01199*dy +
		-0.00256*dx*dx*dx*dy*dy +
		0.00128*dx*dy*dy*dy*dy +
		0.00022*dy*dy +
		-0.00022*dx*dx +
		0.00026*dx*dx*dx*dx*dx

	lat = phi0 + phiSec/3600
	lon = lam0 + lamSec/3600
	return lon, lat
}
