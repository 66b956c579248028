package models

import "time"

// Contractor is the service-pro profile surfaced next to search results.
// Stored in contractors table; the loader appends rows and the API serves
// the most recent one.
type Contractor struct {
	ID          int64     `json:"-"`
	Name        string    `json:"name"`
	Company     string    `json:"company"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	ServiceArea string    `json:"service_area,omitempty"`
	License     string    `json:"license,omitempty"`
	Photo       string    `json:"photo,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	CreatedAt   time.Time `json:"-"`
}
