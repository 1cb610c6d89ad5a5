package booking

import "time"

// Channel tells the slot rules who is asking: online clients get the
// lead-time floor, walk-ins booked by staff do not.
type Channel int

const (
	ChannelOnline Channel = iota
	ChannelWalkin
)

// Policy carries the house rules that changed between deployments and are
// therefore configuration, not constants.
type Policy struct {
	// ClientMinStartHour is the earliest hour online clients may book,
	// regardless of current time. 0 disables the floor.
	ClientMinStartHour int

	// ClosedWeekday is a weekly off-day for online booking. -1 disables it.
	// A schedule row explicitly open on that weekday overrides it.
	ClosedWeekday int

	// AutoAssignExclude lists barber names never picked by auto-assignment.
	AutoAssignExclude []string
}

func (p Policy) IsClosedWeekday(wd time.Weekday) bool {
	return p.ClosedWeekday >= 0 && time.Weekday(p.ClosedWeekday) == wd
}

func (p Policy) IsExcludedFromAutoAssign(name string) bool {
	for _, n := range p.AutoAssignExclude {
		if n == name {
			return true
		}
	}
	return false
}
