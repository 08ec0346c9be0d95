package models

// Outlet is a physical store. OpeningHours and Services are informational
// extras and may be empty for outlets we have not enriched yet.
type Outlet struct {
	ID           int64    `json:"id,omitempty"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	OpeningHours string   `json:"opening_hours,omitempty"`
	Services     []string `json:"services,omitempty"`
}
