// FilePath: internal/models/models.relay.go
package models

import (
	"strings"
	"time"
)

const dimmerSuffix = "-dimmer"

type Relay struct {
	ID          string    `json:"id" db:"id"`
	Hardware    string    `json:"hardware" db:"hardware" writexs:"owner,system"`
	Name        string    `json:"name" db:"name" writexs:"owner,system"`
	Address     string    `json:"address" db:"address" writexs:"owner,system"`
	Wattage     float64   `json:"wattage" db:"wattage" writexs:"owner,system"`
	Flow        float64   `json:"flow" db:"flow" writexs:"owner,system"`
	Dimmer      bool      `json:"dimmer" db:"dimmer" writexs:"system"`
	ManualMode  bool      `json:"manual_mode" db:"manual_mode" writexs:"owner,system"`
	Calibration JSON      `json:"calibration" db:"calibration" writexs:"owner,system"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// RefreshCapabilities derives the dimmer flag from the hardware kind.
// Called whenever the relay is created or its hardware changes, so reads
// never have to inspect the hardware string.
func (r *Relay) RefreshCapabilities() {
	r.Dimmer = strings.HasSuffix(r.Hardware, dimmerSuffix)
}

// Kind returns "dimmer" or "relay" based on the capability flag.
func (r *Relay) Kind() string {
	if r.Dimmer {
		return "dimmer"
	}
	return "relay"
}

// IsOn reports whether the relay is switched on for a resolved current
// value. A stale relay (nil value) is off.
func (r *Relay) IsOn(value *float64) bool {
	return value != nil && *value > 0
}

// CurrentWattage returns the power draw at the resolved current value,
// 0 when the relay is stale.
func (r *Relay) CurrentWattage(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value * r.Wattage / 100
}

// CurrentFlow returns the water flow at the resolved current value,
// 0 when the relay is stale.
func (r *Relay) CurrentFlow(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value * r.Flow / 100
}
