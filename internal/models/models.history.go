// FilePath: internal/models/models.history.go
package models

import "time"

// SensorHistory is one time-bucketed sensor measurement. The timestamp is
// truncated to whole minutes; (sensor_id, timestamp) is the primary key, so
// readings arriving within the same minute merge into this row. The
// threshold fields snapshot the sensor's configuration at the time of the
// bucket so historical alarm evaluation stays reproducible.
type SensorHistory struct {
	SensorID  string    `json:"sensor_id" db:"sensor_id"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	Value     float64   `json:"value" db:"value"`
	LimitMin  float64   `json:"limit_min" db:"limit_min"`
	LimitMax  float64   `json:"limit_max" db:"limit_max"`
	AlarmMin  float64   `json:"alarm_min" db:"alarm_min"`
	AlarmMax  float64   `json:"alarm_max" db:"alarm_max"`
}

// InAlarm evaluates the row's snapshotted thresholds. Used for audit and
// graphing; live alarm state comes from the sensor entity instead.
func (h *SensorHistory) InAlarm() bool {
	return !(h.AlarmMin <= h.Value && h.Value <= h.AlarmMax)
}

// RelayHistory is one relay state change. Timestamps are not truncated:
// every effective state change gets its own row.
type RelayHistory struct {
	RelayID   string    `json:"relay_id" db:"relay_id"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	Value     float64   `json:"value" db:"value"`
	Wattage   float64   `json:"wattage" db:"wattage"`
	Flow      float64   `json:"flow" db:"flow"`
}

// ButtonHistory is one button state change.
type ButtonHistory struct {
	ButtonID  string    `json:"button_id" db:"button_id"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	Value     float64   `json:"value" db:"value"`
}
