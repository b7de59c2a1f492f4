package facility

import "time"

type Facility struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	SportID      string    `db:"sport_id" json:"sportId"`
	Description  string    `db:"description" json:"description"`
	PricePerHour float64   `db:"price_per_hour" json:"pricePerHour"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

type CreateFacilityRequest struct {
	Name         string  `json:"name" binding:"required"`
	SportID      string  `json:"sportId" binding:"required"`
	Description  string  `json:"description"`
	PricePerHour float64 `json:"pricePerHour" binding:"gte=0"`
}
