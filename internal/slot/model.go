package slot

import "time"

const DayAll = "all"

// SlotDefinition is an administrator-configured bookable window for a facility.
// A definition is either recurring (AllDays, Date empty) or pinned to Date.
type SlotDefinition struct {
	ID         string    `db:"id" json:"id"`
	FacilityID string    `db:"field_id" json:"fieldId"`
	StartTime  string    `db:"start_time" json:"startTime"`
	EndTime    string    `db:"end_time" json:"endTime"`
	Price      float64   `db:"price" json:"price"`
	DayOfWeek  string    `db:"day_of_week" json:"dayOfWeek"`
	AllDays    bool      `db:"all_days" json:"allDays"`
	Date       string    `db:"date" json:"date"`
	IsActive   bool      `db:"is_active" json:"isActive"`
	Version    int       `db:"version" json:"version"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

func (s SlotDefinition) Window() Window {
	return Window{Start: s.StartTime, End: s.EndTime}
}

// AppliesTo reports whether the definition is bookable on date.
func (s SlotDefinition) AppliesTo(date string) bool {
	return s.AllDays || (s.Date != "" && s.Date == date)
}

// SameApplicability reports whether both definitions cover the same days.
func (s SlotDefinition) SameApplicability(o SlotDefinition) bool {
	if s.AllDays || o.AllDays {
		return s.AllDays == o.AllDays
	}
	return s.Date == o.Date
}

// Filter narrows List. Date keeps recurring definitions plus those pinned to Date.
type Filter struct {
	FacilityID string
	Date       string
	ActiveOnly bool
}

func (f Filter) Match(s SlotDefinition) bool {
	if f.FacilityID != "" && s.FacilityID != f.FacilityID {
		return false
	}
	if f.Date != "" && !s.AppliesTo(f.Date) {
		return false
	}
	if f.ActiveOnly && !s.IsActive {
		return false
	}
	return true
}

// Match identifies definitions a reservation window was taken from.
type Match struct {
	FacilityID string
	Date       string
	Window     Window
}

func (m Match) Matches(s SlotDefinition) bool {
	return s.FacilityID == m.FacilityID &&
		s.StartTime == m.Window.Start &&
		s.EndTime == m.Window.End &&
		s.AppliesTo(m.Date)
}

type CreateSlotRequest struct {
	StartTime string  `json:"startTime" binding:"required"`
	EndTime   string  `json:"endTime" binding:"required"`
	Price     float64 `json:"price" binding:"gte=0"`
	DayOfWeek string  `json:"dayOfWeek"`
	AllDays   bool    `json:"allDays"`
	Date      string  `json:"date"`
	IsActive  *bool   `json:"isActive"`
}

// Patch carries the administrator-editable fields; nil leaves a field unchanged.
type Patch struct {
	StartTime *string  `json:"startTime"`
	EndTime   *string  `json:"endTime"`
	Price     *float64 `json:"price"`
	DayOfWeek *string  `json:"dayOfWeek"`
	AllDays   *bool    `json:"allDays"`
	Date      *string  `json:"date"`
	IsActive  *bool    `json:"isActive"`
}

func (p Patch) Apply(s SlotDefinition) SlotDefinition {
	if p.StartTime != nil {
		s.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		s.EndTime = *p.EndTime
	}
	if p.Price != nil {
		s.Price = *p.Price
	}
	if p.DayOfWeek != nil {
		s.DayOfWeek = *p.DayOfWeek
	}
	if p.AllDays != nil {
		s.AllDays = *p.AllDays
		if s.AllDays {
			s.Date = ""
		}
	}
	if p.Date != nil {
		s.Date = *p.Date
		if s.Date != "" {
			s.AllDays = false
		}
	}
	if p.IsActive != nil {
		s.IsActive = *p.IsActive
	}
	return s
}
