package models

import "time"

// Schedule is a single row created at startup; the weekday flags mark which
// days the shop opens at all, independent of the master IsOpen toggle.
type Schedule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StartHour int `gorm:"default:11" json:"start_hour"`
	EndHour   int `gorm:"default:19" json:"end_hour"`

	IsOpen bool `gorm:"default:true" json:"is_open"`

	Monday    bool `gorm:"default:true" json:"monday"`
	Tuesday   bool `gorm:"default:true" json:"tuesday"`
	Wednesday bool `gorm:"default:true" json:"wednesday"`
	Thursday  bool `gorm:"default:true" json:"thursday"`
	Friday    bool `gorm:"default:true" json:"friday"`
	Saturday  bool `gorm:"default:true" json:"saturday"`
	Sunday    bool `gorm:"default:false" json:"sunday"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Schedule) OpenOn(wd time.Weekday) bool {
	switch wd {
	case time.Monday:
		return s.Monday
	case time.Tuesday:
		return s.Tuesday
	case time.Wednesday:
		return s.Wednesday
	case time.Thursday:
		return s.Thursday
	case time.Friday:
		return s.Friday
	case time.Saturday:
		return s.Saturday
	default:
		return s.Sunday
	}
}

func (s *Schedule) SetOpenOn(wd time.Weekday, open bool) {
	switch wd {
	case time.Monday:
		s.Monday = open
	case time.Tuesday:
		s.Tuesday = open
	case time.Wednesday:
		s.Wednesday = open
	case time.Thursday:
		s.Thursday = open
	case time.Friday:
		s.Friday = open
	case time.Saturday:
		s.Saturday = open
	default:
		s.Sunday = open
	}
}
