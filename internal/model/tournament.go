package model

// Tournament is a venue event as published on start.gg.
type Tournament struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Slug                 string   `json:"slug"`
	StartAt              string   `json:"startAt"` // ISO 8601
	EndAt                string   `json:"endAt"`   // ISO 8601
	Game                 string   `json:"game"`
	Entrants             int      `json:"entrants"`
	MaxEntrants          *int     `json:"maxEntrants"`
	IsOnline             bool     `json:"isOnline"`
	RegistrationClosesAt *string  `json:"registrationClosesAt"`
	URL                  string   `json:"url"`
	Images               []string `json:"images"`
	Description          string   `json:"description"`
}
