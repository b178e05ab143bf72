package core

// UAVID is a unique relay identifier.
type UAVID int

// UAV is the aerial relay. It flies at a fixed altitude between pinned start
// and end waypoints; the discretized trajectory itself lives in Trajectory
// values produced by the planner, not here.
type UAV struct {
	ID       UAVID
	Altitude float64
	Start    Pos2
	End      Pos2
}

// NewUAV creates a relay with pinned endpoints.
func NewUAV(id UAVID, altitude float64, start, end Pos2) *UAV {
	return &UAV{ID: id, Altitude: altitude, Start: start, End: end}
}

// RelayGain returns the gain of the relay-to-relay channel between two
// altitudes h1 and h2 separated by a planar distance: alpha0/(d² + (h1-h2)²).
func RelayGain(a, b Pos2, alpha0, h1, h2 float64) float64 {
	d := a.Sub(b)
	dh := h1 - h2
	return alpha0 / (d.X*d.X + d.Y*d.Y + dh*dh)
}
