package booking

import (
	"testing"
	"time"
)

func TestIsClosedWeekday(t *testing.T) {
	pol := Policy{ClosedWeekday: int(time.Sunday)}

	if !pol.IsClosedWeekday(time.Sunday) {
		t.Fatalf("Sunday should be the closed weekday")
	}
	if pol.IsClosedWeekday(time.Monday) {
		t.Fatalf("Monday is not the closed weekday")
	}

	off := Policy{ClosedWeekday: -1}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if off.IsClosedWeekday(wd) {
			t.Fatalf("-1 disables the closed weekday, but %v reported closed", wd)
		}
	}
}

func TestIsExcludedFromAutoAssign(t *testing.T) {
	pol := Policy{AutoAssignExclude: []string{"Luca", "Raffa"}}

	if !pol.IsExcludedFromAutoAssign("Luca") {
		t.Fatalf("Luca is on the exclusion list")
	}
	if pol.IsExcludedFromAutoAssign("Andrea") {
		t.Fatalf("Andrea is not excluded")
	}
}
