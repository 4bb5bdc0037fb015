// FilePath: internal/hubservice/hubservice.sensor.go
package hubservice

import (
	"context"
	"math"
	"time"

	nuts "github.com/vaudience/go-nuts"
	"github.com/vivaria/terrahub/internal/errors"
	"github.com/vivaria/terrahub/internal/models"

	"github.com/itsatony/struccy"
)

// SensorState is the resolved live view of a sensor. Error is true when no
// reading exists inside the staleness window.
type SensorState struct {
	ID     string   `json:"id"`
	Type   string   `json:"type"`
	Value  *float64 `json:"value"`
	Error  bool     `json:"error"`
	Alarm  bool     `json:"alarm"`
	Offset float64  `json:"offset"`
}

// CreateSensor creates a new sensor
func (s *HubService) CreateSensor(ctx context.Context, sensor *models.Sensor) error {
	if sensor.ID == "" {
		return errors.NewValidationError("sensor id is required", nil)
	}
	if !models.ValidSensorType(sensor.Type) {
		return errors.NewValidationError("invalid sensor type: "+string(sensor.Type), nil)
	}
	sensor.ApplyDefaults()
	now := s.clock.Now()
	sensor.CreatedAt = now
	sensor.UpdatedAt = now
	if err := s.Sensors.Create(ctx, sensor); err != nil {
		return err
	}
	nuts.L.Infof("[HubService] Created sensor %s (%s)", sensor.ID, sensor.Type)
	return nil
}

// GetSensor retrieves a sensor by ID
func (s *HubService) GetSensor(ctx context.Context, id string) (*models.Sensor, error) {
	return s.Sensors.Get(ctx, id)
}

// ListSensors returns all sensors
func (s *HubService) ListSensors(ctx context.Context) ([]*models.Sensor, error) {
	return s.Sensors.List(ctx)
}

// UpdateSensor merges the non-zero fields of the update into the stored sensor.
func (s *HubService) UpdateSensor(ctx context.Context, id string, update *models.Sensor) (*models.Sensor, error) {
	existing, err := s.Sensors.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	roles := []string{"system"}
	updatedFields, _, err := struccy.UpdateStructFields(existing, update, roles, true, true)
	if err != nil {
		return nil, errors.NewInternalError("failed to merge sensor fields", err)
	}
	if len(updatedFields) == 0 {
		return existing, nil
	}
	if !models.ValidSensorType(existing.Type) {
		return nil, errors.NewValidationError("invalid sensor type: "+string(existing.Type), nil)
	}
	existing.UpdatedAt = s.clock.Now()
	if err := s.Sensors.Update(ctx, existing); err != nil {
		return nil, err
	}
	nuts.L.Infof("[HubService] Updated sensor %s fields %v", id, updatedFields)
	return existing, nil
}

// DeleteSensor removes a sensor and its entire history.
func (s *HubService) DeleteSensor(ctx context.Context, id string) error {
	return s.Cleanup.DeleteSensor(ctx, id)
}

// RecordSensorReading stores a sensor measurement in its minute bucket. A nil
// value is a silent no-op. Readings landing in an occupied bucket are combined
// according to the configured merge mode. Returns the stored row, nil when
// nothing was written.
func (s *HubService) RecordSensorReading(ctx context.Context, sensorID string, value *float64) (*models.SensorHistory, error) {
	if value == nil {
		return nil, nil
	}
	if math.IsNaN(*value) || math.IsInf(*value, 0) {
		return nil, errors.NewValidationError("sensor value must be a finite number", nil)
	}
	sensor, err := s.Sensors.Get(ctx, sensorID)
	if err != nil {
		return nil, err
	}

	bucket := s.clock.Now().Truncate(time.Minute)
	entry := &models.SensorHistory{
		SensorID:  sensorID,
		Timestamp: bucket,
		Value:     *value,
		LimitMin:  sensor.LimitMin,
		LimitMax:  sensor.LimitMax,
		AlarmMin:  sensor.AlarmMin,
		AlarmMax:  sensor.AlarmMax,
	}

	existing, err := s.SensorHistory.GetBucket(ctx, sensorID, bucket)
	if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return s.mergeSensorBucket(ctx, sensor, existing, entry)
	}

	if err := s.SensorHistory.Insert(ctx, entry); err != nil {
		if errors.IsConflict(err) {
			// Lost the race for the bucket. Re-read and merge instead.
			existing, probeErr := s.SensorHistory.GetBucket(ctx, sensorID, bucket)
			if probeErr != nil {
				return nil, probeErr
			}
			return s.mergeSensorBucket(ctx, sensor, existing, entry)
		}
		return nil, err
	}
	s.recordIngest("sensor", outcomeInserted)
	s.publishReading(ctx, "sensor", sensorID, entry.Value, bucket)
	return entry, nil
}

func (s *HubService) mergeSensorBucket(ctx context.Context, sensor *models.Sensor, existing, incoming *models.SensorHistory) (*models.SensorHistory, error) {
	switch s.mergeMode {
	case models.MergeFirst:
		s.recordIngest("sensor", outcomeSkipped)
		return nil, nil
	case models.MergeLast:
		if err := s.SensorHistory.UpdateBucket(ctx, incoming); err != nil {
			return nil, err
		}
		s.recordIngest("sensor", outcomeMerged)
		s.publishReading(ctx, "sensor", sensor.ID, incoming.Value, incoming.Timestamp)
		return incoming, nil
	default:
		merged := &models.SensorHistory{
			SensorID:  sensor.ID,
			Timestamp: existing.Timestamp,
			Value:     (existing.Value + incoming.Value) / 2,
			LimitMin:  (existing.LimitMin + sensor.LimitMin) / 2,
			LimitMax:  (existing.LimitMax + sensor.LimitMax) / 2,
			AlarmMin:  (existing.AlarmMin + sensor.AlarmMin) / 2,
			AlarmMax:  (existing.AlarmMax + sensor.AlarmMax) / 2,
		}
		if err := s.SensorHistory.UpdateBucket(ctx, merged); err != nil {
			return nil, err
		}
		s.recordIngest("sensor", outcomeMerged)
		s.publishReading(ctx, "sensor", sensor.ID, merged.Value, merged.Timestamp)
		return merged, nil
	}
}

// CurrentSensorValue returns the most recent reading inside the sensor
// staleness window, or nil when no fresh reading exists.
func (s *HubService) CurrentSensorValue(ctx context.Context, sensorID string) (*models.SensorHistory, error) {
	since := s.clock.Now().Add(-sensorMaxValueAge)
	entry, err := s.SensorHistory.LatestSince(ctx, sensorID, since)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

// GetSensorState resolves the live state of a sensor. Alarm is evaluated
// against the sensor's current thresholds, not the thresholds stored with the
// reading, so a config change takes effect without a new measurement.
func (s *HubService) GetSensorState(ctx context.Context, sensorID string) (*SensorState, error) {
	sensor, err := s.Sensors.Get(ctx, sensorID)
	if err != nil {
		return nil, err
	}
	state := &SensorState{
		ID:     sensor.ID,
		Type:   string(sensor.Type),
		Error:  true,
		Offset: sensor.Offset(),
	}
	entry, err := s.CurrentSensorValue(ctx, sensorID)
	if err != nil {
		return nil, err
	}
	if entry != nil {
		state.Value = &entry.Value
		state.Error = false
		state.Alarm = sensor.InAlarm(&entry.Value)
	}
	return state, nil
}

// GetSensorHistory returns sensor readings within the given time range.
func (s *HubService) GetSensorHistory(ctx context.Context, sensorID string, from, to time.Time) ([]models.SensorHistory, error) {
	if _, err := s.Sensors.Get(ctx, sensorID); err != nil {
		return nil, err
	}
	entries, err := s.SensorHistory.ListRange(ctx, sensorID, from, to)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.SensorHistory{}
	}
	return entries, nil
}
