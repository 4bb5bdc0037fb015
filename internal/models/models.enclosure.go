// FilePath: internal/models/models.enclosure.go
package models

import (
	"path"
	"strings"
	"time"
)

type Enclosure struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name" writexs:"owner,system"`
	Image       string    `json:"image" db:"image" writexs:"owner,system"`
	Description string    `json:"description" db:"description" writexs:"owner,system"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// NormalizeImage rewrites the image path so the filename is always the
// enclosure id, keeping directory and extension. Enforced on every insert
// and update.
func (e *Enclosure) NormalizeImage() {
	if e.Image == "" || e.ID == "" {
		return
	}
	ext := path.Ext(e.Image)
	if strings.TrimSuffix(path.Base(e.Image), ext) == e.ID {
		return
	}
	e.Image = path.Join(path.Dir(e.Image), e.ID+ext)
}

// AreaMode is the operational mode of an area.
type AreaMode string

const (
	AreaModeDisabled  AreaMode = "disabled"
	AreaModeAuto      AreaMode = "auto"
	AreaModeManual    AreaMode = "manual"
	AreaModeTimer     AreaMode = "timer"
	AreaModeWeather   AreaMode = "weather"
	AreaModeSensor    AreaMode = "sensor"
	AreaModeMainLight AreaMode = "main lights"
)

type Area struct {
	ID          string    `json:"id" db:"id"`
	EnclosureID string    `json:"enclosure_id" db:"enclosure_id"`
	Name        string    `json:"name" db:"name" writexs:"owner,system"`
	Type        string    `json:"type" db:"type" writexs:"owner,system"`
	Mode        AreaMode  `json:"mode" db:"mode" writexs:"owner,system"`
	Setup       JSON      `json:"setup" db:"setup" writexs:"owner,system"`
	State       JSON      `json:"state" db:"state" writexs:"owner,system"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ValidAreaType reports whether t is an allowed area type: lights,
// watertank, or any sensor type.
func ValidAreaType(t string) bool {
	if t == "lights" || t == "watertank" {
		return true
	}
	for _, st := range SensorTypes() {
		if t == string(st) {
			return true
		}
	}
	return false
}
