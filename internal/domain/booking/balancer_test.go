package booking

import "testing"

func TestLeastLoaded(t *testing.T) {
	tests := []struct {
		name   string
		cands  []Candidate
		want   uint
		wantOK bool
	}{
		{
			name:   "empty",
			cands:  nil,
			want:   0,
			wantOK: false,
		},
		{
			name:   "single",
			cands:  []Candidate{{BarberID: 7, TodayCount: 4}},
			want:   7,
			wantOK: true,
		},
		{
			name: "fewest wins",
			cands: []Candidate{
				{BarberID: 1, TodayCount: 3},
				{BarberID: 2, TodayCount: 1},
				{BarberID: 3, TodayCount: 5},
			},
			want:   2,
			wantOK: true,
		},
		{
			name: "tie goes to first",
			cands: []Candidate{
				{BarberID: 4, TodayCount: 2},
				{BarberID: 5, TodayCount: 2},
			},
			want:   4,
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LeastLoaded(tt.cands)
			if ok != tt.wantOK || got != tt.want {
				t.Fatalf("LeastLoaded() = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
