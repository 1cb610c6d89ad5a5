package booking

// Candidate is a barber eligible for auto-assignment, already confirmed to
// have the requested time free.
type Candidate struct {
	BarberID   uint
	TodayCount int
}

// LeastLoaded picks the candidate with the fewest appointments today. Ties go
// to the first encountered, so callers get a stable choice from a stable
// input order. ok is false when no candidate survived filtering.
func LeastLoaded(cands []Candidate) (uint, bool) {
	if len(cands) == 0 {
		return 0, false
	}

	best := cands[0]
	for _, c := range cands[1:] {
		if c.TodayCount < best.TodayCount {
			best = c
		}
	}
	return best.BarberID, true
}
