// FilePath: internal/models/models.button.go
package models

import "time"

// Button is a digital input such as a door contact, motion detector or
// LDR switch. A button with an owning enclosure acts as a door sensor.
type Button struct {
	ID          string    `json:"id" db:"id"`
	Hardware    string    `json:"hardware" db:"hardware" writexs:"owner,system"`
	Name        string    `json:"name" db:"name" writexs:"owner,system"`
	Address     string    `json:"address" db:"address" writexs:"owner,system"`
	EnclosureID *string   `json:"enclosure_id,omitempty" db:"enclosure_id" writexs:"owner,system"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
