package models

// ContactRequest is an inbound request for a callback from a local pro.
// It is validated, logged, and acknowledged; nothing is persisted.
type ContactRequest struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone,omitempty"`
	ZipCode           string `json:"zip_code,omitempty"`
	ApplianceCategory string `json:"appliance_category,omitempty"`
	Model             string `json:"model,omitempty"`
	PreferredTime     string `json:"preferred_time,omitempty"`
	Notes             string `json:"notes,omitempty"`
}
