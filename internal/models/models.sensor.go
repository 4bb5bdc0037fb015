// FilePath: internal/models/models.sensor.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// JSON is a wrapper around map[string]interface{} for database storage
type JSON map[string]interface{}

// Value implements the driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	return json.Marshal(j)
}

// Scan implements the sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, &j)
}

type SensorType string

const (
	Temperature  SensorType = "temperature"
	Humidity     SensorType = "humidity"
	Moisture     SensorType = "moisture"
	Conductivity SensorType = "conductivity"
	Distance     SensorType = "distance"
	PH           SensorType = "ph"
	Light        SensorType = "light"
	UVA          SensorType = "uva"
	UVB          SensorType = "uvb"
	UVI          SensorType = "uvi"
	CO2          SensorType = "co2"
	Volume       SensorType = "volume"
	Windspeed    SensorType = "windspeed"
	Other        SensorType = "other"
)

// SensorTypes lists all known sensor types.
func SensorTypes() []SensorType {
	return []SensorType{
		Temperature, Humidity, Moisture, Conductivity, Distance, PH,
		Light, UVA, UVB, UVI, CO2, Volume, Windspeed, Other,
	}
}

// ValidSensorType reports whether t is a known sensor type.
func ValidSensorType(t SensorType) bool {
	for _, known := range SensorTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// MergeMode selects how a new sensor reading is combined with an existing
// row in the same minute bucket.
type MergeMode string

const (
	// MergeFirst keeps the first stored value and ignores later readings.
	MergeFirst MergeMode = "first"
	// MergeAverage averages the stored value pairwise with each new reading.
	MergeAverage MergeMode = "average"
	// MergeLast overwrites the stored value with the newest reading.
	MergeLast MergeMode = "last"
)

// ValidMergeMode reports whether m is a known merge mode.
func ValidMergeMode(m MergeMode) bool {
	switch m {
	case MergeFirst, MergeAverage, MergeLast:
		return true
	}
	return false
}

type Sensor struct {
	ID          string     `json:"id" db:"id"`
	Hardware    string     `json:"hardware" db:"hardware" writexs:"owner,system"`
	Type        SensorType `json:"type" db:"type" writexs:"owner,system"`
	Name        string     `json:"name" db:"name" writexs:"owner,system"`
	Address     string     `json:"address" db:"address" writexs:"owner,system"`
	LimitMin    float64    `json:"limit_min" db:"limit_min" writexs:"owner,system"`
	LimitMax    float64    `json:"limit_max" db:"limit_max" writexs:"owner,system"`
	AlarmMin    float64    `json:"alarm_min" db:"alarm_min" writexs:"owner,system"`
	AlarmMax    float64    `json:"alarm_max" db:"alarm_max" writexs:"owner,system"`
	MaxDiff     float64    `json:"max_diff" db:"max_diff" writexs:"owner,system"`
	ExcludeAvg  bool       `json:"exclude_avg" db:"exclude_avg" writexs:"owner,system"`
	Calibration JSON       `json:"calibration" db:"calibration" writexs:"owner,system"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// ApplyDefaults fills unset range bounds with the conventional 0..100 span.
func (s *Sensor) ApplyDefaults() {
	if s.LimitMax == 0 {
		s.LimitMax = 100
	}
	if s.AlarmMax == 0 {
		s.AlarmMax = 100
	}
}

// Offset returns the calibration offset, 0 when not configured.
func (s *Sensor) Offset() float64 {
	if s.Calibration == nil {
		return 0
	}
	if v, ok := s.Calibration["offset"].(float64); ok {
		return v
	}
	return 0
}

// InAlarm evaluates the sensor's live alarm thresholds against a resolved
// current value. A stale sensor (nil value) is never in alarm.
func (s *Sensor) InAlarm(value *float64) bool {
	if value == nil {
		return false
	}
	return !(s.AlarmMin <= *value && *value <= s.AlarmMax)
}
