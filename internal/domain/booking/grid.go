package booking

import (
	"fmt"
	"time"

	"github.com/minorebarber/booking-api/internal/models"
)

// The dashboard grid shows every barber's day as 30-minute rows. A long
// appointment starts in one cell and spans continuation cells below it.

type GridCell struct {
	Type        string              `json:"type"` // empty, appointment, continuation
	Appointment *models.Appointment `json:"appointment,omitempty"`
	IsStart     bool                `json:"is_start"`
	SpanRows    int                 `json:"span_rows"`
}

type Grid struct {
	Hours []string                     `json:"hours"`
	Cells map[uint]map[string]GridCell `json:"cells"`
}

// SlotsNeeded rounds a duration up to whole grid slots. Display only; the
// Conflict Detector keeps working in exact minutes.
func SlotsNeeded(dur time.Duration) int {
	return int((dur + SlotInterval - 1) / SlotInterval)
}

// BuildGrid lays out the given appointments on the schedule's hour rows.
// barbers should include inactive ones so row ids stay stable; cancelled
// appointments are skipped.
func BuildGrid(sched *models.Schedule, barbers []models.Barber, appointments []models.Appointment) *Grid {
	var hours []string
	for h := sched.StartHour; h < sched.EndHour; h++ {
		hours = append(hours, fmt.Sprintf("%02d:00", h))
		hours = append(hours, fmt.Sprintf("%02d:30", h))
	}

	rowIndex := make(map[string]int, len(hours))
	for i, h := range hours {
		rowIndex[h] = i
	}

	grid := &Grid{
		Hours: hours,
		Cells: make(map[uint]map[string]GridCell, len(barbers)),
	}

	for _, b := range barbers {
		row := make(map[string]GridCell, len(hours))
		for _, h := range hours {
			row[h] = GridCell{Type: "empty", SpanRows: 1}
		}
		grid.Cells[b.ID] = row
	}

	for i := range appointments {
		ap := &appointments[i]
		if ap.Status == string(StatusCancelled) {
			continue
		}

		row, ok := grid.Cells[ap.BarberID]
		if !ok {
			continue
		}

		// Starts between grid rows (moved appointments can sit at e.g.
		// 14:15) snap down to the containing slot; the span still covers
		// the real end time.
		offset := time.Duration(ap.StartTime.Minute()%30) * time.Minute
		start := ap.StartTime.Add(-offset).Format("15:04")
		idx, ok := rowIndex[start]
		if !ok {
			continue
		}

		span := SlotsNeeded(ap.EffectiveDuration() + offset)
		row[start] = GridCell{
			Type:        "appointment",
			Appointment: ap,
			IsStart:     true,
			SpanRows:    span,
		}

		for j := 1; j < span && idx+j < len(hours); j++ {
			row[hours[idx+j]] = GridCell{
				Type:        "continuation",
				Appointment: ap,
				SpanRows:    1,
			}
		}
	}

	return grid
}
