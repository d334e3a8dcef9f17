package model

// BookingLink points visitors at the ggLeap station booking portal.
type BookingLink struct {
	URL        string `json:"url"`
	CenterName string `json:"centerName"`
	CenterID   string `json:"centerId"`
}

// Station is a single bookable PC, console or VR setup.
type Station struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`   // "pc" | "console" | "vr"
	Status     string  `json:"status"` // "available" | "occupied" | "maintenance"
	HourlyRate float64 `json:"hourlyRate"`
}
