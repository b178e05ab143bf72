package core

import "math"

// Allocation is the computation-resource split for one BCD round: how many
// bits each device pushes to the relay in each slot, and the processor
// frequencies that cover the remaining local work and the offloaded work.
//
// Frequencies are derived from bit volumes via f = C·bits/T, so workload
// conservation holds by construction: local + offloaded = device load.
type Allocation struct {
	// Offload[m][n] is the volume (bits) device m transmits in slot n.
	Offload [][]float64
	// LocalFreq[m] is device m's local compute frequency (Hz).
	LocalFreq []float64
	// UAVFreq[m] is the UAV frequency reserved for device m's work (Hz).
	UAVFreq []float64
}

// NewAllocation returns a zeroed allocation for m devices over n slots.
func NewAllocation(m, n int) *Allocation {
	a := &Allocation{
		Offload:   make([][]float64, m),
		LocalFreq: make([]float64, m),
		UAVFreq:   make([]float64, m),
	}
	for i := range a.Offload {
		a.Offload[i] = make([]float64, n)
	}
	return a
}

// OffloadedBits returns the total volume device m sends over the horizon.
func (a *Allocation) OffloadedBits(m int) float64 {
	total := 0.0
	for _, v := range a.Offload[m] {
		total += v
	}
	return total
}

// LocalBits returns the volume device m processes locally.
func (a *Allocation) LocalBits(m int, load float64) float64 {
	return load - a.OffloadedBits(m)
}

// DeriveFrequencies sets LocalFreq and UAVFreq from the offload volumes so
// each side finishes its share of the work within the horizon.
func (a *Allocation) DeriveFrequencies(devices []*Device, c, t float64) {
	for m, d := range devices {
		off := a.OffloadedBits(m)
		a.LocalFreq[m] = c * (d.Load - off) / t
		a.UAVFreq[m] = c * off / t
	}
}

// Conserves reports whether local + offloaded matches every device's load
// within tol. Frequencies derived by DeriveFrequencies always satisfy this;
// the check guards hand-built allocations in callers and tests.
func (a *Allocation) Conserves(devices []*Device, c, t, tol float64) bool {
	for m, d := range devices {
		local := a.LocalFreq[m] * t / c
		if math.Abs(local+a.OffloadedBits(m)-d.Load) > tol {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (a *Allocation) Clone() *Allocation {
	out := NewAllocation(len(a.Offload), len(a.Offload[0]))
	for m := range a.Offload {
		copy(out.Offload[m], a.Offload[m])
	}
	copy(out.LocalFreq, a.LocalFreq)
	copy(out.UAVFreq, a.UAVFreq)
	return out
}
