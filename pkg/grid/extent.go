package grid

// Extent is a half-open index box over interior coordinates:
// i in [I0, I1), j in [J0, J1), k in [K0, K1).
type Extent struct {
	I0, I1 int
	J0, J1 int
	K0, K1 int
}

// Size returns the number of points in the extent.
func (e Extent) Size() int {
	if e.Empty() {
		return 0
	}
	return (e.I1 - e.I0) * (e.J1 - e.J0) * (e.K1 - e.K0)
}

// Empty reports whether the extent contains no points.
func (e Extent) Empty() bool {
	return e.I1 <= e.I0 || e.J1 <= e.J0 || e.K1 <= e.K0
}

// In reports whether e lies fully inside outer.
func (e Extent) In(outer Extent) bool {
	if e.Empty() {
		return true
	}
	return e.I0 >= outer.I0 && e.I1 <= outer.I1 &&
		e.J0 >= outer.J0 && e.J1 <= outer.J1 &&
		e.K0 >= outer.K0 && e.K1 <= outer.K1
}
